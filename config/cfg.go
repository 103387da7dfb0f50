package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// DomainIndices selects domain indices to be generated: either all of
	// them (true), none (false) or an explicit list of "domain-name" values.
	DomainIndices struct {
		All   bool
		Names []string
	}

	ProjectConfig struct {
		Language              string   `yaml:"language" validate:"omitempty,bcp47_language_tag"`
		HighlightLanguage     string   `yaml:"highlight_language" validate:"required"`
		PygmentsStyle         string   `yaml:"pygments_style" validate:"required"`
		AdditionalFiles       []string `yaml:"additional_files" validate:"dive,required"`
		IndexRegistry         string   `yaml:"index_registry" sanitize:"assure_file_access"`
		Workers               int      `yaml:"workers" validate:"gte=0"`
		OutputNameTemplate    string   `yaml:"output_name_template"`
		FileNameTransliterate bool     `yaml:"file_name_transliterate"`
	}

	TranslatorConfig struct {
		Strict   bool     `yaml:"strict"`
		Optional []string `yaml:"optional" validate:"dive,required"`
	}

	// LatexConfig carries project wide defaults for every document.
	LatexConfig struct {
		DocClass           string        `yaml:"docclass" validate:"required"`
		PaperSize          string        `yaml:"paper_size" validate:"required"`
		FontSize           string        `yaml:"font_size" validate:"required"`
		ToplevelSectioning Sectioning    `yaml:"toplevel_sectioning" validate:"gte=0"`
		ReleaseName        string        `yaml:"release_name"`
		IndexName          string        `yaml:"index_name"`
		MakeIndex          bool          `yaml:"make_index"`
		DomainIndices      DomainIndices `yaml:"domain_indices"`
		Preamble           string        `yaml:"preamble"`
		Logo               string        `yaml:"logo"`
	}

	TemplatesConfig struct {
		Header   string `yaml:"header,omitempty" sanitize:"assure_file_access"`
		BeginDoc string `yaml:"begin_doc,omitempty" sanitize:"assure_file_access"`
		Footer   string `yaml:"footer,omitempty" sanitize:"assure_file_access"`
	}

	// DocumentConfig describes single output target. Empty values are
	// inherited from LatexConfig (see Config.Resolve).
	DocumentConfig struct {
		Target             string          `yaml:"target" validate:"required"`
		DocName            string          `yaml:"docname" validate:"required"`
		Title              string          `yaml:"title,omitempty"`
		Author             string          `yaml:"author,omitempty"`
		Date               string          `yaml:"date,omitempty"`
		Release            string          `yaml:"release,omitempty"`
		DocClass           string          `yaml:"docclass,omitempty"`
		PaperSize          string          `yaml:"paper_size,omitempty"`
		FontSize           string          `yaml:"font_size,omitempty"`
		ClassOptions       []string        `yaml:"class_options,omitempty"`
		ToctreeOnly        bool            `yaml:"toctree_only,omitempty"`
		Appendices         []string        `yaml:"appendices,omitempty" validate:"dive,required"`
		ToplevelSectioning Sectioning      `yaml:"toplevel_sectioning,omitempty" validate:"gte=0"`
		TOCDepth           int             `yaml:"tocdepth,omitempty" validate:"gte=0"`
		DomainIndices      *DomainIndices  `yaml:"domain_indices,omitempty"`
		Preamble           string          `yaml:"preamble,omitempty"`
		Logo               string          `yaml:"logo,omitempty"`
		Templates          TemplatesConfig `yaml:"templates,omitempty"`
		ReleaseName        string          `yaml:"-"`
		IndexName          string          `yaml:"-"`
		MakeIndex          bool            `yaml:"-"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Project    ProjectConfig    `yaml:"project"`
		Translator TranslatorConfig `yaml:"translator"`
		Latex      LatexConfig      `yaml:"latex"`
		Documents  []DocumentConfig `yaml:"documents" validate:"dive"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	PreambleFieldName           TemplateFieldName = "preamble"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(PreambleFieldName)),
)

// UnmarshalYAML accepts either boolean or a list of index names.
func (d *DomainIndices) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var all bool
		if err := value.Decode(&all); err != nil {
			return fmt.Errorf("domain_indices must be boolean or list of names: %w", err)
		}
		*d = DomainIndices{All: all}
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("domain_indices must be boolean or list of names: %w", err)
		}
		*d = DomainIndices{Names: names}
	default:
		return fmt.Errorf("domain_indices must be boolean or list of names, line %d", value.Line)
	}
	return nil
}

func (d DomainIndices) MarshalYAML() (any, error) {
	if len(d.Names) > 0 {
		return d.Names, nil
	}
	return d.All, nil
}

// Enabled reports whether index with given "domain-name" must be generated.
func (d DomainIndices) Enabled(name string) bool {
	if len(d.Names) > 0 {
		for _, n := range d.Names {
			if n == name {
				return true
			}
		}
		return false
	}
	return d.All
}

// Resolve returns document configuration with all inheritable values filled
// from project wide defaults.
func (c *Config) Resolve(d DocumentConfig) DocumentConfig {
	l := &c.Latex
	if d.DocClass == "" {
		d.DocClass = l.DocClass
	}
	if d.PaperSize == "" {
		d.PaperSize = l.PaperSize
	}
	if d.FontSize == "" {
		d.FontSize = l.FontSize
	}
	d.ToplevelSectioning = d.ToplevelSectioning.Or(l.ToplevelSectioning)
	if d.ToplevelSectioning == SectioningDefault {
		d.ToplevelSectioning = SectioningChapter
	}
	if d.DomainIndices == nil {
		di := l.DomainIndices
		d.DomainIndices = &di
	}
	switch {
	case l.Preamble != "" && d.Preamble != "":
		d.Preamble = l.Preamble + "\n" + d.Preamble
	case d.Preamble == "":
		d.Preamble = l.Preamble
	}
	if d.Logo == "" {
		d.Logo = l.Logo
	}
	d.ReleaseName, d.IndexName, d.MakeIndex = l.ReleaseName, l.IndexName, l.MakeIndex
	return d
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
