// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the analysis lifecycle (decode the layout,
// build the network, propagate purposes, write the report), decoupled from
// any specific entrypoint like a CLI.
package app
