package actor

import (
	"fmt"
	"regexp"
	"strings"
)

// nameAlphabet matches a bare actor name: alphanumerics, underscore, dash.
var nameAlphabet = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// pathAlphabet matches a full path or selection expression: the name
// alphabet plus the path separator, dot (parent segment) and star
// (wildcard segment).
var pathAlphabet = regexp.MustCompile(`^[a-zA-Z0-9_\-/.*]+$`)

// URI identifies an actor uniquely within a System. Actor references
// compare equal by Path alone (BasicRef.Equal); Name and Host are
// informational.
type URI struct {
	Name string
	Path string
	Host string
}

func (u URI) String() string {
	return u.Path
}

// ValidateName checks a bare actor name against the reserved alphabet.
func ValidateName(name string) error {
	if name == "" || !nameAlphabet.MatchString(name) {
		return &InvalidNameError{Name: name}
	}
	return nil
}

// ValidatePath checks a full path or selection expression against the
// wider alphabet that additionally allows '/', '.' and '*'.
func ValidatePath(path string) error {
	if path == "" || !pathAlphabet.MatchString(path) {
		return &InvalidPathError{Path: path}
	}
	return nil
}

// childPath composes a child's path from its parent and name.
func childPath(parentPath, name string) string {
	if strings.HasSuffix(parentPath, "/") {
		return parentPath + name
	}
	return parentPath + "/" + name
}

const (
	rootPath   = "/"
	userPath   = "/user"
	systemPath = "/system"
	tempPath   = "/temp"
)

func newRootURI(name, path string) URI {
	return URI{Name: name, Path: path, Host: "local"}
}

// shortName returns the actor's name, or its bracketed path when the
// name is empty.
func (u URI) shortName() string {
	if u.Name != "" {
		return u.Name
	}
	return fmt.Sprintf("<%s>", u.Path)
}
