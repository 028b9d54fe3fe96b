package pocketbase

// AuthRecord is the record payload returned by the authentication endpoints.
// It carries the system fields of an auth collection record; custom fields are
// not included.
type AuthRecord struct {
	ID              string `json:"id"`
	CollectionID    string `json:"collectionId"`
	CollectionName  string `json:"collectionName"`
	Created         string `json:"created"`
	Updated         string `json:"updated"`
	Email           string `json:"email"`
	EmailVisibility bool   `json:"emailVisibility"`
	Verified        bool   `json:"verified"`
}

// AuthStore is a token paired with the record it authenticates. A successful
// AuthWithPassword or AuthRefresh installs one as the client's session.
type AuthStore struct {
	Token  string     `json:"token"`
	Record AuthRecord `json:"record"`
}

// IsValid reports whether the store holds a token.
func (s *AuthStore) IsValid() bool {
	return s != nil && s.Token != ""
}

// RecordList is one page of records from a list endpoint.
//
// When the request was made with skipTotal, the server reports TotalItems and
// TotalPages as -1.
type RecordList[T any] struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Items      []T `json:"items"`
}

// WriteResponse is the subset of a record returned by create and update: the
// system fields only, regardless of the record's custom fields.
type WriteResponse struct {
	ID             string `json:"id"`
	CollectionID   string `json:"collectionId"`
	CollectionName string `json:"collectionName"`
	Created        string `json:"created"`
	Updated        string `json:"updated"`
}
