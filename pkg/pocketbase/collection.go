package pocketbase

import "fmt"

// Collection is a handle to one collection's record endpoints. Handles are
// cheap; create them per call or hold on to them, both are fine.
type Collection struct {
	client *Client
	name   string

	// err holds a name validation failure; every operation on the handle
	// surfaces it before touching the network.
	err error
}

// Collection returns a handle for the named collection. The name is validated
// eagerly; an invalid name makes every operation on the handle fail.
func (c *Client) Collection(name string) *Collection {
	return &Collection{
		client: c,
		name:   name,
		err:    validateCollectionName(name),
	}
}

// Name returns the collection name the handle was created with.
func (col *Collection) Name() string {
	return col.name
}

func validateCollectionName(name string) error {
	if name == "" {
		return ErrEmptyCollectionName
	}

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidCollectionName, name)
		}
	}

	return nil
}

// recordsPath is the records endpoint for the collection.
func (col *Collection) recordsPath() string {
	return "/api/collections/" + col.name + "/records"
}

// recordPath is the endpoint for a single record.
func (col *Collection) recordPath(recordID string) string {
	return col.recordsPath() + "/" + recordID
}

// collectionPath is the endpoint for a collection-scoped action like
// auth-with-password or request-verification.
func (col *Collection) collectionPath(action string) string {
	return "/api/collections/" + col.name + "/" + action
}
