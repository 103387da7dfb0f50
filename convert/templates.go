package convert

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"dtex/config"
	"dtex/convert/latex"
	"dtex/state"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Target   string
	DocName  string
	Title    string
	Authors  []string
	Date     string
	Release  string
	Language string
	RunID    string
}

func buildValues(name config.TemplateFieldName, doc config.DocumentConfig, info latex.PDFInfo, env *state.LocalEnv) Values {
	v := Values{
		Context: string(name),
		Target:  strings.TrimSuffix(path.Base(doc.Target), path.Ext(doc.Target)),
		DocName: doc.DocName,
		Title:   info.Title,
		Authors: info.Authors,
		Date:    doc.Date,
		Release: doc.Release,
		RunID:   env.RunID.String(),
	}
	if v.Title == "" {
		v.Title = doc.Title
	}
	if env.Cfg != nil {
		v.Language = env.Cfg.Project.Language
	}
	return v
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
