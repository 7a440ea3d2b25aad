// pkg/transform/transform.go
package transform

import (
	"fmt"
	"strconv"

	"github.com/saturnines/tap-cj/pkg/errors"
)

// NumberKind is the target numeric type for a coerced field.
type NumberKind int

const (
	Float NumberKind = iota // Monetary fields
	Int                     // Quantities
)

// CastNumber normalizes one raw field value. Empty strings and nil become nil
// (the API sends "" for genuinely absent amounts); values already of the target
// type pass through; numeric strings are parsed. Anything else is a cast error,
// never a silent nil.
func CastNumber(value interface{}, kind NumberKind) (interface{}, error) {
	if value == nil || value == "" {
		return nil, nil
	}

	switch kind {
	case Float:
		return castFloat(value)
	case Int:
		return castInt(value)
	default:
		return nil, fmt.Errorf("unknown number kind: %d", kind)
	}
}

func castFloat(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrCast, fmt.Sprintf("cast %q to float", v))
		}
		return f, nil
	default:
		return nil, errors.WrapError(
			fmt.Errorf("cannot convert %T to float", value),
			errors.ErrCast,
			"cast to float",
		)
	}
}

func castInt(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrCast, fmt.Sprintf("cast %q to int", v))
		}
		return i, nil
	default:
		return nil, errors.WrapError(
			fmt.Errorf("cannot convert %T to int", value),
			errors.ErrCast,
			"cast to int",
		)
	}
}

// numericField pairs a record field name with its target type.
type numericField struct {
	name string
	kind NumberKind
}

// The designated numeric fields of a commission record. They can appear at the
// record top level and inside each entry of items.
var commissionNumericFields = []numericField{
	{"orderDiscountUsd", Float},
	{"pubCommissionAmountUsd", Float},
	{"saleAmountUsd", Float},
	{"totalCommissionPubCurrency", Float},
	{"perItemSaleAmountPubCurrency", Float},
	{"quantity", Int},
}

// Transformer normalizes one raw record. A nil record return (with nil error)
// signals the record should be dropped by the emit loop.
type Transformer interface {
	Apply(record map[string]interface{}) (map[string]interface{}, error)
}

// CommissionTransformer coerces the designated numeric fields of a commission
// record from the API's string representations to typed values.
type CommissionTransformer struct{}

// NewCommissionTransformer creates the post-processing transformer for
// commission records.
func NewCommissionTransformer() *CommissionTransformer {
	return &CommissionTransformer{}
}

// Apply mutates record in place and returns it.
func (t *CommissionTransformer) Apply(record map[string]interface{}) (map[string]interface{}, error) {
	for _, field := range commissionNumericFields {
		if raw, ok := record[field.name]; ok {
			cast, err := CastNumber(raw, field.kind)
			if err != nil {
				return nil, errors.WrapError(err, errors.ErrCast, fmt.Sprintf("field %q", field.name))
			}
			record[field.name] = cast
		}

		items, ok := record["items"].([]interface{})
		if !ok {
			continue
		}
		for i, entry := range items {
			item, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			if raw, ok := item[field.name]; ok {
				cast, err := CastNumber(raw, field.kind)
				if err != nil {
					return nil, errors.WrapError(err, errors.ErrCast, fmt.Sprintf("items[%d].%s", i, field.name))
				}
				item[field.name] = cast
			}
		}
	}
	return record, nil
}
