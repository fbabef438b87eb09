package telemetry

import (
	"fmt"
	"os"
)

const defaultDataset = "critterquest"

// ApplyHoneycombEnv points the OTLP exporter at Honeycomb using
// HONEYCOMB_API_KEY and HONEYCOMB_DATASET. The .env file may hold an
// unexpanded header reference, so the header is always rebuilt here.
func ApplyHoneycombEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = defaultDataset
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
