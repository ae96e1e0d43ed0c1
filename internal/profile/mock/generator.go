// Package mock generates stand-in profiles when no upstream API is reachable.
package mock

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
	"net/url"
	"unicode"
	"unicode/utf8"

	"github.com/dtroode/xcard-server/internal/model"
)

const defaultBio = "크리에이터이자 개발자입니다. Web3와 AI에 관심이 많습니다. 🚀 #BuildInPublic"

var locations = []string{"Seoul, Korea", "San Francisco, CA", "Tokyo, Japan", "London, UK"}

// Generator is a ProfileSource that derives a stable profile from the username.
type Generator struct{}

var _ model.ProfileSource = Generator{}

func NewGenerator() Generator {
	return Generator{}
}

func (Generator) Name() string {
	return "mock"
}

func (Generator) Fetch(_ context.Context, username string) (model.Profile, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(username))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	followers := int64(rng.IntN(10000) + 100)
	following := int64(rng.IntN(1000) + 50)
	verified := rng.Float64() > 0.8
	location := locations[rng.IntN(len(locations))]
	bio := defaultBio
	image := "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(username)

	return model.Profile{
		Username:     username,
		DisplayName:  capitalize(username) + " User",
		ProfileImage: &image,
		Bio:          &bio,
		Followers:    &followers,
		Following:    &following,
		Verified:     &verified,
		Location:     &location,
	}, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
