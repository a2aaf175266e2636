package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Plain(t *testing.T) {
	got := Resolve([]string{"Office: Shriram 123", "Contact: jdoe@stanford.edu"})
	assert.Equal(t, "jdoe@stanford.edu", got)
}

func TestResolve_PlainWinsOverObfuscated(t *testing.T) {
	got := Resolve([]string{
		"reach me at jdoe [at] stanford [dot] edu",
		"or directly: jane.doe@mit.edu",
	})
	assert.Equal(t, "jane.doe@mit.edu", got)
}

func TestResolve_Obfuscated(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bracket at dot", "jdoe [at] stanford [dot] edu", "jdoe@stanford.edu"},
		{"paren at dot", "jdoe (at) stanford (dot) edu", "jdoe@stanford.edu"},
		{"word separators", "jdoe at stanford dot edu", "jdoe@stanford.edu"},
		{"paren at literal dot", "jane(at)stanford.edu", "jane@stanford.edu"},
		{"mixed dots", "j.doe [at] cheme.stanford [dot] edu", "j.doe@cheme.stanford.edu"},
		{"spaced brackets", "jdoe [ at ] stanford [ dot ] edu", "jdoe@stanford.edu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve([]string{tt.text}))
		})
	}
}

func TestResolve_NoMatch(t *testing.T) {
	fragments := []string{
		"Office hours Tuesday at noon",
		"Building 13, Room 4054",
		"Meet me at the lab",
	}
	assert.Equal(t, "", Resolve(fragments))
}

func TestResolve_Empty(t *testing.T) {
	assert.Equal(t, "", Resolve(nil))
	assert.Equal(t, "", Resolve([]string{""}))
}
