package actor

import "strings"

type segKind int

const (
	segLiteral segKind = iota
	segParent
	segWildcard
)

type pathSegment struct {
	kind segKind
	name string
}

// Selection is a lazily-resolved path expression anchored at one actor.
// Resolution walks the live tree at send time, so a Selection built once
// and reused will always reach whatever currently occupies the matching
// paths.
type Selection struct {
	anchor   *BasicRef
	segments []pathSegment
}

// newSelection parses path relative to anchor. A leading "/" anchors the
// expression at the system root instead. Segments are "..", "*", or a
// literal child name.
func newSelection(anchor *BasicRef, path string) (*Selection, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	start := anchor
	rest := path
	if strings.HasPrefix(path, "/") {
		start = anchor.c.system.rootRef()
		rest = strings.TrimPrefix(path, "/")
	}

	var segs []pathSegment
	for _, part := range strings.Split(rest, "/") {
		switch part {
		case "":
			continue
		case "..":
			segs = append(segs, pathSegment{kind: segParent})
		case "*":
			segs = append(segs, pathSegment{kind: segWildcard})
		default:
			if err := ValidateName(part); err != nil {
				return nil, err
			}
			segs = append(segs, pathSegment{kind: segLiteral, name: part})
		}
	}

	return &Selection{anchor: start, segments: segs}, nil
}

// resolve walks the segments against the live tree, returning every actor
// currently matching the expression. An empty result means no literal
// segment in the path currently resolves to a live child.
func (s *Selection) resolve() []*BasicRef {
	current := []*BasicRef{s.anchor}
	for _, seg := range s.segments {
		var next []*BasicRef
		for _, ref := range current {
			switch seg.kind {
			case segParent:
				if ref.c.parent != nil {
					next = append(next, ref.c.parent)
				}
			case segWildcard:
				next = append(next, ref.c.children.snapshot()...)
			case segLiteral:
				if child, ok := ref.c.children.get(seg.name); ok {
					next = append(next, child)
				}
			}
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current
}

// Tell delivers msg to every actor currently matching this selection. If
// nothing matches, the message is routed to dead letters against the
// selection's anchor, matching the failure mode of an unresolved literal
// path.
func (s *Selection) Tell(msg interface{}, sender *BasicRef) {
	targets := s.resolve()
	if len(targets) == 0 {
		s.anchor.c.system.publishDeadLetter(msg, sender, *s.anchor)
		return
	}
	for _, t := range targets {
		t.Tell(msg, sender)
	}
}

// Identify asks every actor currently matching this selection to report
// its concrete BasicRef back to requester via a sysIdentity system
// message (SUPPLEMENTED FEATURE, grounded on
// original_source/riker-testkit's ActorSelection identify handshake).
func (s *Selection) Identify(requester *BasicRef) {
	for _, t := range s.resolve() {
		t.c.tellSys(sysIdentify{Sender: requester})
	}
}
