package repository

import (
	"carscout/src/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The store is schemaless, so every field is read through a tolerant
// accessor: missing or mistyped values decode to the documented defaults
// (empty string, zero, empty list, false). Numeric fields accept the
// widenings the mongo driver produces (int32/int64/float64).

func carFromDocument(d Document) model.Car {
	return model.Car{
		ID:           d.ID,
		Manufacturer: asString(d.Fields, "manufacturer"),
		Model:        asString(d.Fields, "model"),
		Year:         asInt(d.Fields, "year"),
		Mileage:      asInt(d.Fields, "mileage"),
		Condition:    asString(d.Fields, "condition"),
		Description:  asString(d.Fields, "description"),
		Price:        asFloat(d.Fields, "price"),
		ImageURLs:    asStringList(d.Fields, "imageUrls"),
		OwnerID:      asString(d.Fields, "ownerId"),
		CreatedAt:    asInt64(d.Fields, "createdAt"),
	}
}

func dealershipFromDocument(d Document) model.Dealership {
	return model.Dealership{
		ID:          d.ID,
		Name:        asString(d.Fields, "name"),
		Address:     asString(d.Fields, "address"),
		PhoneNumber: asString(d.Fields, "phoneNumber"),
		Email:       asString(d.Fields, "email"),
		ImageURLs:   asStringList(d.Fields, "imageUrls"),
		OwnerID:     asString(d.Fields, "ownerId"),
		CreatedAt:   asInt64(d.Fields, "createdAt"),
	}
}

func userFromDocument(d Document) model.User {
	return model.User{
		ID:           d.ID,
		Name:         asString(d.Fields, "name"),
		Email:        asString(d.Fields, "email"),
		City:         asString(d.Fields, "city"),
		AvatarURL:    asString(d.Fields, "avatarUrl"),
		IsBusiness:   asBool(d.Fields, "isBusiness"),
		PasswordHash: asString(d.Fields, "passwordHash"),
	}
}

func asString(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

func asBool(fields map[string]any, key string) bool {
	if b, ok := fields[key].(bool); ok {
		return b
	}
	return false
}

func asInt(fields map[string]any, key string) int {
	return int(asInt64(fields, key))
}

func asInt64(fields map[string]any, key string) int64 {
	switch v := fields[key].(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func asFloat(fields map[string]any, key string) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func asStringList(fields map[string]any, key string) []string {
	var raw []any
	switch v := fields[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		raw = v
	case primitive.A:
		raw = v
	default:
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
