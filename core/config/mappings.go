package config

import (
	"fmt"

	"termsheet-reconciler/core/reconcile"

	"github.com/spf13/viper"
)

// LoadMappings reads a YAML mappings file and merges it into the given
// reconciliation config. The file may override the field order and add or
// replace synonym lists per canonical field:
//
//	field_order:
//	  - isin
//	  - coupon_rate
//	synonyms:
//	  coupon_rate:
//	    - Coupon
//	    - InterestRate
//
// Fields absent from the file keep their built-in mappings.
func LoadMappings(path string, cfg reconcile.Config) (reconcile.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read mappings file: %w", err)
	}

	if order := v.GetStringSlice("field_order"); len(order) > 0 {
		cfg.FieldOrder = order
	}

	if raw := v.GetStringMapStringSlice("synonyms"); len(raw) > 0 {
		merged := make(map[string][]string, len(cfg.Synonyms)+len(raw))
		for field, candidates := range cfg.Synonyms {
			merged[field] = candidates
		}
		for field, candidates := range raw {
			merged[field] = candidates
		}
		cfg.Synonyms = merged
	}

	return cfg, nil
}
