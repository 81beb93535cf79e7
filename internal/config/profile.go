package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is the YAML file form of Config. Nil fields are not set by the
// file. Keys match the long flag names.
type Profile struct {
	Dir           *string        `yaml:"dir"`
	Kind          *string        `yaml:"kind"`
	CaseSensitive *bool          `yaml:"case-sensitive"`
	Content       *bool          `yaml:"content"`
	FirstOnly     *bool          `yaml:"first-only"`
	Preview       *bool          `yaml:"preview"`
	Depth         *int           `yaml:"depth"`
	KeepOnCancel  *bool          `yaml:"keep-on-cancel"`
	IgnoreDir     []string       `yaml:"ignore-dir"`
	IgnoreFile    []string       `yaml:"ignore-file"`
	Ext           []string       `yaml:"ext"`
	Gitignore     *bool          `yaml:"gitignore"`
	SkipBinary    *bool          `yaml:"skip-binary"`
	LogLevel      *string        `yaml:"log-level"`
	NoColor       *bool          `yaml:"no-color"`
	ShowSkipped   *bool          `yaml:"show-skipped"`
	Progress      *bool          `yaml:"progress"`
	Timeout       *time.Duration `yaml:"timeout"`
	Format        *string        `yaml:"format"`
	Output        *string        `yaml:"output"`
}

// LoadProfile reads a YAML profile. Unknown keys are an error.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML profile from data.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

// ApplyProfile copies every value set in p into c, except for flags the
// user passed explicitly; changed reports those by long flag name.
func (c *Config) ApplyProfile(p *Profile, changed func(flag string) bool) {
	if p == nil {
		return
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	setString := func(flag string, dst *string, v *string) {
		if v != nil && !changed(flag) {
			*dst = *v
		}
	}
	setBool := func(flag string, dst *bool, v *bool) {
		if v != nil && !changed(flag) {
			*dst = *v
		}
	}
	setList := func(flag string, dst *[]string, v []string) {
		if v != nil && !changed(flag) {
			*dst = append([]string(nil), v...)
		}
	}

	setString("dir", &c.RootDir, p.Dir)
	setString("kind", &c.Kind, p.Kind)
	setBool("case-sensitive", &c.CaseSensitive, p.CaseSensitive)
	setBool("content", &c.Content, p.Content)
	setBool("first-only", &c.FirstMatchOnly, p.FirstOnly)
	setBool("preview", &c.Preview, p.Preview)
	if p.Depth != nil && !changed("depth") {
		c.MaxDepth = *p.Depth
	}
	setBool("keep-on-cancel", &c.KeepOnCancel, p.KeepOnCancel)
	setList("ignore-dir", &c.IgnoredDirs, p.IgnoreDir)
	setList("ignore-file", &c.IgnoredFiles, p.IgnoreFile)
	setList("ext", &c.Extensions, p.Ext)
	setBool("gitignore", &c.Gitignore, p.Gitignore)
	setBool("skip-binary", &c.SkipBinary, p.SkipBinary)
	setString("log-level", &c.LogLevel, p.LogLevel)
	setBool("no-color", &c.NoColor, p.NoColor)
	setBool("show-skipped", &c.ShowSkipped, p.ShowSkipped)
	setBool("progress", &c.ShowProgress, p.Progress)
	if p.Timeout != nil && !changed("timeout") {
		c.Timeout = *p.Timeout
	}
	setString("format", &c.Format, p.Format)
	setString("output", &c.OutputFile, p.Output)
}
