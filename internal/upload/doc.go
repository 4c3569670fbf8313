// Package upload stores submitted documents on disk until the periodic
// cleanup job removes them. Files get uuid names so uploads can never
// collide or traverse outside the configured directory.
package upload
