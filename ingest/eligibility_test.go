package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tcheplay/youtube"
)

func TestIsDubbedPortuguese(t *testing.T) {
	for _, tc := range []struct {
		name        string
		title       string
		description string
		exp         bool
	}{
		{
			name:  "dub marker in title",
			title: "Filme Completo Dublado em Português",
			exp:   true,
		},
		{
			name:        "dub marker in description only",
			title:       "Filme Completo",
			description: "Áudio PT-BR",
			exp:         true,
		},
		{
			name:  "subtitle only",
			title: "Filme Legendado",
			exp:   false,
		},
		{
			name:  "subtitle marker overridden by dub marker",
			title: "Filme Dublado e Legendado",
			exp:   true,
		},
		{
			name:  "subtitle only with language marker",
			title: "Filme Legendado PT",
			exp:   false,
		},
		{
			name:  "uppercase dub marker",
			title: "FILME DUBLADO",
			exp:   true,
		},
		{
			name:  "no markers at all",
			title: "Full Movie HD",
			exp:   false,
		},
		{
			name:  "bracketed subtitle tag without dub",
			title: "Filme [LEG] Completo em Português",
			exp:   false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, IsDubbedPortuguese(tc.title, tc.description))
		})
	}
}

func TestLooksLikeReview(t *testing.T) {
	for _, tc := range []struct {
		name        string
		title       string
		description string
		exp         bool
	}{
		{name: "review in title", title: "Movie REVIEW", exp: true},
		{name: "resenha in description", title: "Filme Dublado", description: "resenha completa", exp: true},
		{name: "análise in title", title: "Análise do filme", exp: true},
		{name: "clean title", title: "Filme Completo Dublado", exp: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, LooksLikeReview(tc.title, tc.description))
		})
	}
}

func TestIsEligible(t *testing.T) {
	eligible := youtube.Video{
		ID:         "abc",
		Title:      "Filme Completo Dublado em Português",
		Duration:   "PT25M",
		Embeddable: true,
	}

	t.Run("all predicates hold", func(t *testing.T) {
		assert.True(t, IsEligible(eligible))
	})

	t.Run("short duration fails regardless of other fields", func(t *testing.T) {
		for _, duration := range []string{"PT19M59S", "PT5M", "PT0S", "", "garbage"} {
			v := eligible
			v.Duration = duration
			assert.False(t, IsEligible(v), "duration %q", duration)
		}
	})

	t.Run("not embeddable", func(t *testing.T) {
		v := eligible
		v.Embeddable = false
		assert.False(t, IsEligible(v))
	})

	t.Run("review videos excluded regardless of other fields", func(t *testing.T) {
		v := eligible
		v.Description = "review do filme"
		assert.False(t, IsEligible(v))
	})

	t.Run("subtitle only excluded", func(t *testing.T) {
		v := eligible
		v.Title = "Filme Legendado PT"
		assert.False(t, IsEligible(v))
	})
}
