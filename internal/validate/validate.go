// Package validate checks pack directories for the structure the catalog
// generator relies on. Every problem is collected rather than stopping at the
// first one.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"

	"github.com/ziadkadry99/packdocs/internal/generate"
)

// Problem is one structural defect.
type Problem struct {
	Pack    string
	File    string // relative to the pack; empty for pack-level problems
	Message string
}

func (p Problem) String() string {
	if p.File == "" {
		return p.Pack + ": " + p.Message
	}
	return p.Pack + "/" + p.File + ": " + p.Message
}

// Report is the outcome of validating a set of packs.
type Report struct {
	Packs    []string
	Problems []Problem
}

// OK reports whether no problems were found.
func (r Report) OK() bool { return len(r.Problems) == 0 }

// pluginRules are the keys plugin.json must carry when present.
type pluginRules struct {
	Name        *string `json:"name" validate:"required"`
	Version     *string `json:"version" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// matterRules are the keys every skill and agent frontmatter must carry.
type matterRules struct {
	Name        *string `yaml:"name" validate:"required"`
	Description *string `yaml:"description" validate:"required"`
}

// Validator checks packs against the rules above.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator whose messages use the file's key names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "yaml"} {
			if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return &Validator{v: v}
}

// Run validates each pack directory under root, in order.
func (val *Validator) Run(root string, packs []string) Report {
	r := Report{Packs: packs}
	for _, pack := range packs {
		r.Problems = append(r.Problems, val.Pack(filepath.Join(root, pack), pack)...)
	}
	return r
}

// Pack validates a single pack directory.
func (val *Validator) Pack(dir, name string) []Problem {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return []Problem{{Pack: name, Message: "pack directory does not exist"}}
	}
	fsys := os.DirFS(dir)

	var problems []Problem
	add := func(file, format string, args ...any) {
		problems = append(problems, Problem{Pack: name, File: file, Message: fmt.Sprintf(format, args...)})
	}

	if data, err := fs.ReadFile(fsys, generate.PluginFile); err == nil {
		var p pluginRules
		if err := json.Unmarshal(data, &p); err != nil {
			add(generate.PluginFile, "invalid JSON: %v", err)
		} else {
			for _, msg := range val.messages(p) {
				add(generate.PluginFile, "%s", msg)
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		add(generate.PluginFile, "error reading file: %v", err)
	}

	if data, err := fs.ReadFile(fsys, generate.MCPFile); err == nil {
		if msg := checkMCP(data); msg != "" {
			add(generate.MCPFile, "%s", msg)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		add(generate.MCPFile, "error reading file: %v", err)
	}

	for _, glob := range []string{generate.SkillGlob, generate.AgentGlob} {
		files, err := doublestar.Glob(fsys, glob)
		if err != nil {
			add("", "listing %s: %v", glob, err)
			continue
		}
		for _, f := range files {
			for _, msg := range val.frontmatter(fsys, f) {
				add(f, "%s", msg)
			}
		}
	}
	return problems
}

func (val *Validator) frontmatter(fsys fs.FS, name string) []string {
	f, err := fsys.Open(name)
	if err != nil {
		return []string{fmt.Sprintf("error reading file: %v", err)}
	}
	defer f.Close()

	var m matterRules
	if _, err := frontmatter.MustParse(f, &m); err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return []string{"missing YAML frontmatter (should start with --- and end with ---)"}
		}
		return []string{fmt.Sprintf("invalid YAML: %v", err)}
	}
	return val.messages(m)
}

// messages turns validator failures into readable sentences.
func (val *Validator) messages(v any) []string {
	err := val.v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("missing required field '%s'", fe.Field()))
		default:
			out = append(out, fmt.Sprintf("field '%s' failed %s", fe.Field(), fe.Tag()))
		}
	}
	return out
}

func checkMCP(data []byte) string {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Sprintf("invalid JSON: %v", err)
	}
	raw, ok := doc["mcpServers"]
	if !ok {
		return "missing 'mcpServers' key"
	}
	var servers map[string]json.RawMessage
	if err := json.Unmarshal(raw, &servers); err != nil || servers == nil {
		return "'mcpServers' must be an object"
	}
	return ""
}
