// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
)

// Rune keys are mapped onto tcell keys by their code point.
const (
	KeyColon    tcell.Key = ':'
	KeySlash    tcell.Key = '/'
	KeyQuestion tcell.Key = '?'
	KeyG        tcell.Key = 'g'
	KeyShiftG   tcell.Key = 'G'
	KeyJ        tcell.Key = 'j'
	KeyK        tcell.Key = 'k'
	KeyQ        tcell.Key = 'q'
	KeyR        tcell.Key = 'r'
	Key0        tcell.Key = '0'
)

// AsKey converts a rune event into its key.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	return tcell.Key(evt.Rune())
}

// ActionHandler handles a keyboard command.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: display}
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions tracks the actions bound to a view.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns an empty action set.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Add binds an action.
func (a *KeyActions) Add(k tcell.Key, ka KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.actions[k] = ka
}

// Bulk binds several actions.
func (a *KeyActions) Bulk(km KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()
	for k, v := range km {
		a.actions[k] = v
	}
}

// Get returns the action bound to k.
func (a *KeyActions) Get(k tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()
	v, ok := a.actions[k]
	return v, ok
}

// Delete unbinds keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()
	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Len returns the number of bound actions.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return len(a.actions)
}

// Hints returns the menu hints of the visible actions.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	kk := make([]tcell.Key, 0, len(a.actions))
	for k := range a.actions {
		kk = append(kk, k)
	}
	sort.Slice(kk, func(i, j int) bool { return kk[i] < kk[j] })

	hh := make(MenuHints, 0, len(kk))
	for _, k := range kk {
		ka := a.actions[k]
		if !ka.Visible {
			continue
		}
		hh = append(hh, MenuHint{
			Mnemonic:    keyName(k),
			Description: ka.Description,
			Visible:     true,
		})
	}

	return hh
}

func keyName(k tcell.Key) string {
	if name, ok := tcell.KeyNames[k]; ok {
		return name
	}
	return string(rune(k))
}
