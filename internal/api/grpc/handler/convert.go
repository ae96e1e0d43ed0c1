package handler

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/xcard-server/internal/model"
)

func profileFromStruct(s *structpb.Struct) (model.Profile, error) {
	fields := s.GetFields()
	var (
		p   model.Profile
		err error
	)

	if p.Username, err = requiredString(fields, "username"); err != nil {
		return model.Profile{}, err
	}
	if p.DisplayName, err = requiredString(fields, "displayName"); err != nil {
		return model.Profile{}, err
	}
	if p.ProfileImage, err = optionalString(fields, "profileImage"); err != nil {
		return model.Profile{}, err
	}
	if p.Bio, err = optionalString(fields, "bio"); err != nil {
		return model.Profile{}, err
	}
	if p.Location, err = optionalString(fields, "location"); err != nil {
		return model.Profile{}, err
	}
	if p.Followers, err = optionalInt(fields, "followers"); err != nil {
		return model.Profile{}, err
	}
	if p.Following, err = optionalInt(fields, "following"); err != nil {
		return model.Profile{}, err
	}

	if v, ok := present(fields, "verified"); ok {
		b, isBool := v.GetKind().(*structpb.Value_BoolValue)
		if !isBool {
			return model.Profile{}, model.NewValidationError("verified", "must be a boolean")
		}
		p.Verified = &b.BoolValue
	}

	return p, nil
}

// present returns the field unless it is missing or null.
func present(fields map[string]*structpb.Value, name string) (*structpb.Value, bool) {
	v, ok := fields[name]
	if !ok || v == nil {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func requiredString(fields map[string]*structpb.Value, name string) (string, error) {
	v, err := optionalString(fields, name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func optionalString(fields map[string]*structpb.Value, name string) (*string, error) {
	v, ok := present(fields, name)
	if !ok {
		return nil, nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return nil, model.NewValidationError(name, "must be a string")
	}
	return &s.StringValue, nil
}

func optionalInt(fields map[string]*structpb.Value, name string) (*int64, error) {
	v, ok := present(fields, name)
	if !ok {
		return nil, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return nil, model.NewValidationError(name, "must be an integer")
	}
	i := int64(n.NumberValue)
	return &i, nil
}

func orNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func cardFields(card model.UserCard) map[string]any {
	return map[string]any{
		"id":           card.ID.String(),
		"username":     card.Username,
		"displayName":  card.DisplayName,
		"userNumber":   card.UserNumber,
		"profileImage": orNil(card.ProfileImage),
		"bio":          orNil(card.Bio),
		"followers":    orNil(card.Followers),
		"following":    orNil(card.Following),
		"verified":     card.Verified,
		"location":     orNil(card.Location),
		"createdAt":    card.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updatedAt":    card.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func registrationStruct(reg model.Registration) (*structpb.Struct, error) {
	return newStruct(map[string]any{
		"success":    true,
		"userNumber": reg.UserNumber,
		"isNewUser":  reg.IsNewUser,
		"user":       cardFields(reg.Card),
		"cardToken":  reg.CardToken,
	})
}

func cardStruct(card model.UserCard) (*structpb.Struct, error) {
	return newStruct(map[string]any{
		"success": true,
		"user":    cardFields(card),
	})
}

func statsStruct(stats model.Stats) (*structpb.Struct, error) {
	recent := make([]any, 0, len(stats.RecentUsers))
	for _, u := range stats.RecentUsers {
		recent = append(recent, map[string]any{
			"username":    u.Username,
			"displayName": u.DisplayName,
			"userNumber":  u.UserNumber,
			"createdAt":   u.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return newStruct(map[string]any{
		"success": true,
		"stats": map[string]any{
			"totalUsers":     stats.TotalUsers,
			"currentCounter": stats.CurrentCounter,
			"recentUsers":    recent,
		},
	})
}

func newStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return s, nil
}
