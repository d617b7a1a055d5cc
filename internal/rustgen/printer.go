// Copyright 2024 The protrust Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rustgen

import (
	"fmt"
	"io"
	"strings"
)

// indentUnit is the indentation added per level.
const indentUnit = "  "

// printer writes generated source to a sink, tracking an indentation level
// and substituting $name$ variables in template text.
//
// Indentation is applied lazily at the start of each non-empty line, so blank
// lines never carry trailing whitespace. A doubled delimiter ($$) emits a
// literal dollar sign.
type printer struct {
	w           io.Writer
	indent      string
	atLineStart bool
	err         error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, atLineStart: true}
}

// Print substitutes vars into text and writes the result.
//
// A reference to a variable not present in vars is a bug in the caller and
// panics.
func (p *printer) Print(vars map[string]string, text string) {
	var out strings.Builder
	for {
		open := strings.IndexByte(text, '$')
		if open < 0 {
			out.WriteString(text)
			break
		}
		out.WriteString(text[:open])
		rest := text[open+1:]
		end := strings.IndexByte(rest, '$')
		if end < 0 {
			p.err = fmt.Errorf("unclosed variable delimiter in template %q", text)
			return
		}
		name := rest[:end]
		if name == "" {
			out.WriteByte('$')
		} else {
			value, ok := vars[name]
			if !ok {
				panic(fmt.Sprintf("rustgen: template references undefined variable %q", name))
			}
			out.WriteString(value)
		}
		text = rest[end+1:]
	}
	p.PrintRaw(out.String())
}

// PrintRaw writes text without variable substitution.
func (p *printer) PrintRaw(text string) {
	if p.err != nil {
		return
	}
	for len(text) > 0 {
		line := text
		newline := strings.IndexByte(text, '\n')
		if newline >= 0 {
			line = text[:newline]
			text = text[newline+1:]
		} else {
			text = ""
		}
		if len(line) > 0 {
			if p.atLineStart {
				if err := p.write(p.indent); err != nil {
					return
				}
			}
			if err := p.write(line); err != nil {
				return
			}
			p.atLineStart = false
		}
		if newline >= 0 {
			if err := p.write("\n"); err != nil {
				return
			}
			p.atLineStart = true
		}
	}
}

// Indent increases the indentation level by one unit.
func (p *printer) Indent() {
	p.indent += indentUnit
}

// Outdent decreases the indentation level by one unit.
func (p *printer) Outdent() {
	if len(p.indent) < len(indentUnit) {
		panic("rustgen: outdent without matching indent")
	}
	p.indent = p.indent[:len(p.indent)-len(indentUnit)]
}

// Err returns the first write error encountered, if any.
func (p *printer) Err() error {
	return p.err
}

func (p *printer) write(s string) error {
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
	}
	return p.err
}
