package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"psp-advisor/internal/models"
)

// Parser errors
var (
	ErrEmptyDocument   = errors.New("document is empty")
	ErrEmptyCatalog    = errors.New("catalog contains no providers")
	ErrDuplicateSlug   = errors.New("duplicate provider slug")
	ErrInvalidProvider = errors.New("invalid provider")
)

// Decode unmarshals a JSON or YAML document into v, choosing the format from the
// file extension. Unknown extensions are treated as JSON.
func Decode(name string, data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", name, err)
		}
	}
	return nil
}

// ParseCatalog decodes a catalog snapshot and checks every provider.
func ParseCatalog(name string, data []byte) ([]*models.Provider, error) {
	var snapshot models.CatalogSnapshot
	if err := Decode(name, data, &snapshot); err != nil {
		return nil, err
	}

	if err := ValidateCatalog(snapshot.Providers); err != nil {
		return nil, err
	}
	return snapshot.Providers, nil
}

// ValidateCatalog reports the first structural problem in a catalog.
func ValidateCatalog(providers []*models.Provider) error {
	if len(providers) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]int, len(providers))
	for i, p := range providers {
		if p == nil {
			return fmt.Errorf("%w: entry %d is empty", ErrInvalidProvider, i+1)
		}
		if err := models.ValidateProvider(p); err != nil {
			return fmt.Errorf("%w: entry %d: %w", ErrInvalidProvider, i+1, err)
		}
		if prev, ok := seen[p.Slug]; ok {
			return fmt.Errorf("%w: %q at entries %d and %d", ErrDuplicateSlug, p.Slug, prev, i+1)
		}
		seen[p.Slug] = i + 1
	}
	return nil
}

// ParseProfile decodes and validates a merchant profile document.
func ParseProfile(name string, data []byte) (*models.MerchantProfile, error) {
	var profile models.MerchantProfile
	if err := Decode(name, data, &profile); err != nil {
		return nil, err
	}

	if profile.Locale == "" {
		profile.Locale = models.DefaultLocale
	}
	if err := models.ValidateMerchantProfile(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
