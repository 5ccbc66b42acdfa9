package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// serverArgs mixes server flags with CLI flags the server does not own.
var serverArgs = []string{"-d", "mongodb://db/tuktask", "-a", "http://api", "-r=redis:6379", "login"}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"server flags only", serverArgs, []string{"-d", "-r"}, []string{"-d", "mongodb://db/tuktask", "-r=redis:6379"}},
		{"nothing allowed", serverArgs, nil, []string{}},
		{"dangling flag kept", []string{"-s"}, []string{"-s"}, []string{"-s"}},
		{"flag is never a value", []string{"-s", "-t", "30"}, []string{"-s"}, []string{"-s"}},
		{"inline value may start with dash", []string{"-s=-x-"}, []string{"-s"}, []string{"-s=-x-"}},
		{"order preserved", []string{"-t", "30", "-a", ":8080"}, []string{"-a", "-t"}, []string{"-t", "30", "-a", ":8080"}},
		{"positional with equals", []string{"k=v", "-b", "12"}, []string{"-b"}, []string{"-b", "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestPositional(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		valued []string
		want   []string
	}{
		{"subcommand after valued flags", serverArgs, []string{"-a", "-d"}, []string{"login"}},
		{"boolean flag does not eat", []string{"-v", "whoami"}, []string{"-a"}, []string{"whoami"}},
		{"no subcommand", []string{"-a", "http://api"}, []string{"-a"}, nil},
		{"valued flag at end", []string{"logout", "-a"}, []string{"-a"}, []string{"logout"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Positional(tt.args, tt.valued))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	assert.Equal(t, "tuktask.json", JsonConfigFlags([]string{"-d", "x", "-c", "tuktask.json"}))
	assert.Equal(t, "alt.json", JsonConfigFlags([]string{"-config", "alt.json", "whoami"}))
	assert.Equal(t, "eq.json", JsonConfigFlags([]string{"--config=eq.json"}))
	assert.Empty(t, JsonConfigFlags(serverArgs))
}
