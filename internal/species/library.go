package species

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed configs/*.json
var embeddedConfigs embed.FS

//go:embed schema/species.schema.json
var embeddedSchema []byte

// GlobalLibrary provides the default species configs bundled with the binary.
var GlobalLibrary = MustLoadLibrary()

// Library stores validated species configurations indexed by name.
type Library struct {
	configsByName map[string]*Config
}

// MustLoadLibrary loads the embedded species configs or panics on failure.
func MustLoadLibrary() *Library {
	lib, err := LoadLibrary()
	if err != nil {
		panic(fmt.Errorf("species: load library: %w", err))
	}
	return lib
}

// LoadLibrary loads the embedded species configs, validating each document
// against the bundled schema before decoding it.
func LoadLibrary() (*Library, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	lib := &Library{configsByName: make(map[string]*Config)}

	entries, err := fs.ReadDir(embeddedConfigs, "configs")
	if err != nil {
		return nil, fmt.Errorf("species: read configs: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(embeddedConfigs, "configs/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("species: read %q: %w", entry.Name(), err)
		}

		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("species: decode %q: %w", entry.Name(), err)
		}
		if err := schema.Validate(doc); err != nil {
			return nil, fmt.Errorf("species: validate %q: %w", entry.Name(), err)
		}

		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("species: decode %q: %w", entry.Name(), err)
		}
		if err := checkConfig(&cfg); err != nil {
			return nil, fmt.Errorf("species: config %q: %w", entry.Name(), err)
		}

		name := strings.TrimSpace(strings.ToLower(cfg.Name))
		if _, dup := lib.configsByName[name]; dup {
			return nil, fmt.Errorf("species: duplicate config for %q", name)
		}
		lib.configsByName[name] = &cfg
	}

	return lib, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("species.schema.json", bytes.NewReader(embeddedSchema)); err != nil {
		return nil, fmt.Errorf("species: add schema resource: %w", err)
	}
	schema, err := compiler.Compile("species.schema.json")
	if err != nil {
		return nil, fmt.Errorf("species: compile schema: %w", err)
	}
	return schema, nil
}

// checkConfig enforces cross-field constraints the schema cannot express.
func checkConfig(cfg *Config) error {
	if cfg.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed must be positive, got %v", cfg.MaxSpeed)
	}
	if cfg.Height <= 0 || cfg.Width <= 0 {
		return fmt.Errorf("height and width must be positive")
	}
	n := cfg.Needs
	if n.Starving >= n.Hungry || n.Hungry >= n.Satisfied {
		return fmt.Errorf("hunger thresholds must satisfy starving < hungry < satisfied")
	}
	if n.Dehydrated >= n.Thirsty || n.Thirsty >= n.Hydrated {
		return fmt.Errorf("thirst thresholds must satisfy dehydrated < thirsty < hydrated")
	}
	if f := cfg.Flee; f != nil {
		if f.ZigzagMin >= f.ZigzagMax {
			return fmt.Errorf("flee zigzag band must have min < max")
		}
		if f.ZigzagMax > f.DetectRadius {
			return fmt.Errorf("flee zigzag band must fit inside the detection radius")
		}
	}
	if h := cfg.Hunt; h != nil {
		if h.ContactRange >= h.ChaseRange {
			return fmt.Errorf("hunt contact range must be below chase range")
		}
		if h.CooldownFailure <= h.CooldownSuccess {
			return fmt.Errorf("hunt failure cooldown must exceed success cooldown")
		}
	}
	if p := cfg.Pack; p != nil {
		if p.MinAngleDeg >= p.MaxAngleDeg {
			return fmt.Errorf("pack flank band must have min < max angle")
		}
	}
	return nil
}

// Get returns the config for a species name, or nil when unknown.
func (l *Library) Get(name string) *Config {
	return l.configsByName[strings.TrimSpace(strings.ToLower(name))]
}

// Names returns the loaded species names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.configsByName))
	for name := range l.configsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
