// seehuhn.de/go/psengine - a PostScript Level 2 interpreter core
// Copyright (C) 2026  The psengine authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package font

import (
	"fmt"

	"seehuhn.de/go/psengine"
)

// Registry is the findfont/definefont resource table (PLRM §8.1,
// "Font dictionaries" and §3.3.9, "FontDirectory"): FontDirectory
// proper maps a font name to the PostScript font dictionary Object that
// names it, while the side table maps each dictionary's minted FID to
// the actually-decodable glyph program backing it. PostScript code only
// ever sees the Dict half; Bind is how a host (cmd/psengine, or a
// resource-loading procset) attaches real glyph data to a name before
// any `show` can reach it.
//
// Grounded on interp.Context's existing ActiveSaves/JobSaves pattern of
// a plain Go map keyed by minted identity, generalized from Save
// records to font identity.
type Registry struct {
	directory map[string]*psengine.Dict
	bindings  map[*psengine.FontID]*Font
}

// NewRegistry returns an empty registry, installed once per Context.
func NewRegistry() *Registry {
	return &Registry{
		directory: make(map[string]*psengine.Dict),
		bindings:  make(map[*psengine.FontID]*Font),
	}
}

// Bind associates a minted FontID with its decodable glyph program.
// Called by a font-loading procset (or cmd/psengine, for built-in
// fonts) once per definefont/composefont, never by ordinary show-path
// code.
func (r *Registry) Bind(fid *psengine.FontID, f *Font) {
	f.id = fid
	r.bindings[fid] = f
}

// Lookup returns the glyph program bound to dict's /FID entry, or
// (nil, false) if dict has no bound program (e.g. it was built by
// PostScript code directly rather than through Bind).
func (r *Registry) Lookup(dict *psengine.Dict) (*Font, bool) {
	fid, ok := fidOf(dict)
	if !ok {
		return nil, false
	}
	f, ok := r.bindings[fid]
	return f, ok
}

// Register installs dict under name in FontDirectory (definefont's
// visible effect, PLRM §8.1).
func (r *Registry) Register(name string, dict *psengine.Dict) {
	r.directory[name] = dict
}

// Find returns the font dictionary registered under name, or (nil,
// false) if findfont's key has not been defined.
func (r *Registry) Find(name string) (*psengine.Dict, bool) {
	d, ok := r.directory[name]
	return d, ok
}

// Identity returns the glyph cache's Font fingerprint component for f
// (glyphcache.Key.Font, spec §4.6: "FontName bytes and FID if present").
// Printf's %p is stable for the lifetime of the process, which is all
// the cache needs: two *Font values are the same font iff they are the
// same pointer.
func (f *Font) Identity() string {
	name := ""
	if f.Dict != nil {
		if v, ok := f.Dict.Store.Get("FontName"); ok {
			if n, ok := v.(psengine.Name); ok {
				name = n.String()
			}
		}
	}
	return fmt.Sprintf("%s#%p", name, f)
}

func fidOf(dict *psengine.Dict) (*psengine.FontID, bool) {
	v, ok := dict.Store.Get("FID")
	if !ok {
		return nil, false
	}
	fid, ok := v.(*psengine.FontID)
	return fid, ok
}
