package pnpm

import (
	"github.com/mailru/easyjson/jlexer"
)

// projectsDTO is the top-level array printed by `pnpm --json ls` and `pnpm --json why`.
type projectsDTO []projectDTO

type projectDTO struct {
	Name            string
	Version         string
	Path            string
	Private         bool
	Dependencies    dependenciesDTO
	DevDependencies dependenciesDTO
	HasDeps         bool
	HasDevDeps      bool
}

// dependenciesDTO keeps the key order of a dependencies object.
type dependenciesDTO []dependencyEntry

type dependencyEntry struct {
	Name string
	Dep  dependencyDTO
}

type dependencyDTO struct {
	From         string
	Version      string
	Resolved     string
	Path         string
	Dependencies dependenciesDTO
}

// UnmarshalEasyJSON decodes the project array.
func (p *projectsDTO) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		*p = nil
		return
	}
	in.Delim('[')
	for !in.IsDelim(']') {
		var v projectDTO
		v.UnmarshalEasyJSON(in)
		*p = append(*p, v)
		in.WantComma()
	}
	in.Delim(']')
}

// UnmarshalEasyJSON decodes one project record. Unknown fields are skipped.
func (p *projectDTO) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "name":
			p.Name = in.String()
		case "version":
			p.Version = in.String()
		case "path":
			p.Path = in.String()
		case "private":
			p.Private = in.Bool()
		case "dependencies":
			p.HasDeps = true
			p.Dependencies.UnmarshalEasyJSON(in)
		case "devDependencies":
			p.HasDevDeps = true
			p.DevDependencies.UnmarshalEasyJSON(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}

// UnmarshalEasyJSON decodes a name-keyed dependencies object in key order.
func (d *dependenciesDTO) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		name := in.String()
		in.WantColon()
		var dep dependencyDTO
		dep.UnmarshalEasyJSON(in)
		*d = append(*d, dependencyEntry{Name: name, Dep: dep})
		in.WantComma()
	}
	in.Delim('}')
}

// UnmarshalEasyJSON decodes one dependency entry. Unknown fields are skipped.
func (d *dependencyDTO) UnmarshalEasyJSON(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "from":
			d.From = in.String()
		case "version":
			d.Version = in.String()
		case "resolved":
			d.Resolved = in.String()
		case "path":
			d.Path = in.String()
		case "dependencies":
			d.Dependencies.UnmarshalEasyJSON(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}
