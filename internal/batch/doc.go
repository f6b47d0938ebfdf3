// Package batch runs many texts or words through the processor without a
// UI and collects the results for YAML or JSON output.
package batch
