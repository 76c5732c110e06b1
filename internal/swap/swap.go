// Package swap promotes a farmhand to the save's host player and demotes
// the current host into the farmhand list, without touching anything else
// in the document.
package swap

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tatianab/farmswap/internal/xmldoc"
)

// How participant records appear in the save. The host lives in a single
// <player> element directly under the root; farmhands are <Farmer> entries
// inside the <farmhands> list. Which container a record sits in IS its
// role; the tag follows the container.
const (
	hostTag      = "player"
	farmhandTag  = "Farmer"
	farmhandsTag = "farmhands"

	identityTag = "UniqueMultiplayerID"
	nameTag     = "name"
	homeTag     = "homeLocation"
)

var (
	// ErrAmbiguousHost means the save does not contain exactly one <player>.
	ErrAmbiguousHost = errors.New("save does not have exactly one host player record")
	// ErrNoFarmhands means there is nobody to swap with.
	ErrNoFarmhands = errors.New("save has no farmhands")
	// ErrFarmhandNotFound means the selector matched nobody.
	ErrFarmhandNotFound = errors.New("no farmhand matches the selection")
	// ErrAmbiguousFarmhand means the selector matched more than one farmhand.
	ErrAmbiguousFarmhand = errors.New("selection matches more than one farmhand")
	// ErrDanglingReference means the document refers to a participant
	// identity that does not exist. Identities are never rewritten by a
	// swap, so this signals a save that was already inconsistent; the
	// caller must not write the result out.
	ErrDanglingReference = errors.New("save references a participant that does not exist")
)

// Participant identifies one person in the save, independent of role.
type Participant struct {
	ID   int64
	Name string
}

// Result reports a completed swap for caller logging and confirmation.
type Result struct {
	OldHost Participant
	NewHost Participant
}

// Selector picks the farmhand to promote. ordinal is the 1-based position
// of the candidate in the farmhand list, as shown to the user.
type Selector func(ordinal int, p Participant) bool

// ByName selects the farmhand with the given display name.
func ByName(name string) Selector {
	return func(_ int, p Participant) bool { return p.Name == name }
}

// ByOrdinal selects the nth farmhand as listed, starting at 1.
func ByOrdinal(n int) Selector {
	return func(ordinal int, _ Participant) bool { return ordinal == n }
}

// ByID selects the farmhand with the given multiplayer identity.
func ByID(id int64) Selector {
	return func(_ int, p Participant) bool { return p.ID == id }
}

// Elements elsewhere in the save that name a participant by identity.
// Building ownership and cellar assignments survive a swap untouched, so
// after mutating the tree we only verify they still point at somebody.
var crossReferencePaths = []string{
	"//buildings/Building/owner",
	"//cellarAssignments/item/value/long",
}

// Host returns the current host player.
func Host(doc *xmldoc.Document) (Participant, error) {
	el, err := hostElement(doc)
	if err != nil {
		return Participant{}, err
	}
	return participantOf(el)
}

// List returns the farmhands in document order.
func List(doc *xmldoc.Document) ([]Participant, error) {
	list, err := xmldoc.FindOne(doc.Root(), farmhandsTag)
	if err != nil {
		return nil, fmt.Errorf("locating farmhand list: %w", err)
	}
	var out []Participant
	for _, el := range xmldoc.Children(list, farmhandTag) {
		p, err := participantOf(el)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Swap exchanges the roles of the current host and the farmhand resolved by
// sel. Identities and state payloads are never modified: the two records
// trade containers, tags and role-only fields, nothing more. The tree is
// left untouched on any precondition failure; on ErrDanglingReference it
// has been mutated and must be discarded, not serialized.
func Swap(doc *xmldoc.Document, sel Selector) (*Result, error) {
	root := doc.Root()

	oldHost, err := hostElement(doc)
	if err != nil {
		return nil, err
	}
	oldHostP, err := participantOf(oldHost)
	if err != nil {
		return nil, err
	}

	list, err := xmldoc.FindOne(root, farmhandsTag)
	if err != nil {
		return nil, fmt.Errorf("locating farmhand list: %w", err)
	}
	entries := xmldoc.Children(list, farmhandTag)
	if len(entries) == 0 {
		return nil, ErrNoFarmhands
	}

	newHost, newHostP, err := resolve(entries, sel)
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved swap targets",
		"old_host", oldHostP.Name, "old_host_id", oldHostP.ID,
		"new_host", newHostP.Name, "new_host_id", newHostP.ID)

	// Role-only fields must exist on both sides before anything moves.
	oldHome, err := xmldoc.FindOne(oldHost, homeTag)
	if err != nil {
		return nil, fmt.Errorf("host %q has no home location: %w", oldHostP.Name, err)
	}
	newHome, err := xmldoc.FindOne(newHost, homeTag)
	if err != nil {
		return nil, fmt.Errorf("farmhand %q has no home location: %w", newHostP.Name, err)
	}

	// Pull both records out, remembering where the host slot was. The
	// farmhand is removed by element identity, so the remaining farmhands
	// keep their relative order no matter what ordinal the selector used.
	slot := xmldoc.IndexOf(oldHost)
	xmldoc.Detach(list, newHost)
	xmldoc.Detach(root, oldHost)

	// The record's tag follows its container, and the home location is a
	// property of the role (the host sleeps in the farmhouse, a farmhand
	// in a cabin), so both move with the role rather than the person.
	oldHost.Tag = farmhandTag
	newHost.Tag = hostTag
	home := oldHome.Text()
	oldHome.SetText(newHome.Text())
	newHome.SetText(home)

	xmldoc.InsertAt(root, slot, newHost)
	xmldoc.Append(list, oldHost)
	slog.Debug("records exchanged", "host_slot", slot)

	if err := checkReferences(doc); err != nil {
		return nil, err
	}

	return &Result{OldHost: oldHostP, NewHost: newHostP}, nil
}

func hostElement(doc *xmldoc.Document) (*xmldoc.Element, error) {
	hosts := xmldoc.Children(doc.Root(), hostTag)
	if len(hosts) != 1 {
		return nil, fmt.Errorf("%w: found %d <%s> records", ErrAmbiguousHost, len(hosts), hostTag)
	}
	return hosts[0], nil
}

func resolve(entries []*xmldoc.Element, sel Selector) (*xmldoc.Element, Participant, error) {
	var (
		match  *xmldoc.Element
		matchP Participant
		n      int
	)
	for i, el := range entries {
		p, err := participantOf(el)
		if err != nil {
			return nil, Participant{}, err
		}
		if sel(i+1, p) {
			match, matchP = el, p
			n++
		}
	}
	switch n {
	case 0:
		return nil, Participant{}, ErrFarmhandNotFound
	case 1:
		return match, matchP, nil
	default:
		return nil, Participant{}, fmt.Errorf("%w: %d matches", ErrAmbiguousFarmhand, n)
	}
}

func participantOf(el *xmldoc.Element) (Participant, error) {
	raw := xmldoc.Text(el, identityTag)
	if raw == "" {
		return Participant{}, fmt.Errorf("<%s> record has no <%s>", el.Tag, identityTag)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Participant{}, fmt.Errorf("<%s> record has bad <%s> %q: %w", el.Tag, identityTag, raw, err)
	}
	return Participant{ID: id, Name: xmldoc.Text(el, nameTag)}, nil
}

// checkReferences re-scans the mutated tree and verifies every identity
// reference still resolves. A swap never changes identities, so a failure
// here means the save was inconsistent before we touched it.
func checkReferences(doc *xmldoc.Document) error {
	root := doc.Root()

	ids := make(map[int64]bool)
	record := func(el *xmldoc.Element) error {
		p, err := participantOf(el)
		if err != nil {
			return err
		}
		ids[p.ID] = true
		return nil
	}
	host, err := hostElement(doc)
	if err != nil {
		return err
	}
	if err := record(host); err != nil {
		return err
	}
	list, err := xmldoc.FindOne(root, farmhandsTag)
	if err != nil {
		return err
	}
	for _, el := range xmldoc.Children(list, farmhandTag) {
		if err := record(el); err != nil {
			return err
		}
	}

	for _, path := range crossReferencePaths {
		for _, el := range xmldoc.FindAll(root, path) {
			id, err := strconv.ParseInt(el.Text(), 10, 64)
			if err != nil || id == 0 {
				// Unowned; the game writes 0 for buildings nobody claims.
				continue
			}
			if !ids[id] {
				return fmt.Errorf("%w: <%s> names %d", ErrDanglingReference, el.Tag, id)
			}
		}
	}
	slog.Debug("cross-references verified", "participants", len(ids))
	return nil
}
