package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"htmm/internal/domain"
)

// truncate shortens s to max runes, appending "..." when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// parseRecordID parses a CLI mod id argument.
func parseRecordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid mod id %q: expected a number", arg)
	}
	return id, nil
}

// parseProvider validates a CLI provider argument.
func parseProvider(arg string) (domain.Provider, error) {
	switch domain.Provider(arg) {
	case domain.ProviderCurseForge, domain.ProviderOrbis:
		return domain.Provider(arg), nil
	}
	return "", fmt.Errorf("unknown provider %q (expected curseforge or orbis)", arg)
}

// marshalIndent renders v as indented JSON with a trailing newline.
func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// enabledLabel renders a record's enabled flag for table output.
func enabledLabel(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}
