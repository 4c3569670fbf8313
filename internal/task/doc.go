// Package task runs the periodic cleanup job: on a fixed interval it
// deletes stored uploads and resets the content cache file to an empty
// object. The pipeline itself never clears the cache; this runner is the
// external lifecycle actor that does.
package task
