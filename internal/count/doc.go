// Package count turns binary crypt masks into per-crypt outlines and size
// statistics.
//
// [CountMask] labels the 8-connected blobs of a mask, separates touching
// crypts in each blob concurrently, and orders the resulting crypts from the
// top of the image down. [ProcessDir] does the same for every PNG mask in a
// directory, reading files through a caller-supplied [Loader].
//
// # Size Statistics
//
// Areas are polygon areas of the traced outlines. The total, mean and
// population standard deviation are reported rounded to whole pixels.
//
// # Failure Handling
//
// A blob that fails to separate is dropped from the count and its error is
// recorded on the result; the rest of the mask is still counted. Likewise a
// file that fails to load is recorded and the directory batch moves on.
package count
