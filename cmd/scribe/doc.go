// Command scribe is the operator CLI for the telemetry ingestion daemon.
// It inspects the store (status, images, detections, audit) and manages
// configuration files. The daemon itself runs as scribed.
package main
