package bucket

import "time"

// Object is the metadata the storage API reports for one object.
// Size and Generation are decimal strings on the wire, as the JSON API
// serializes int64 fields.
type Object struct {
	Kind        string    `json:"kind,omitempty"`
	Name        string    `json:"name,omitempty"`
	Bucket      string    `json:"bucket,omitempty"`
	Size        string    `json:"size,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
	Generation  string    `json:"generation,omitempty"`
	MD5Hash     string    `json:"md5Hash,omitempty"`
	CRC32C      string    `json:"crc32c,omitempty"`
	TimeCreated time.Time `json:"timeCreated"`
	Updated     time.Time `json:"updated"`
}

// ObjectList is one page of a bucket listing. NextPageToken is
// surfaced but not followed; callers that need more than one page
// issue further List calls themselves.
type ObjectList struct {
	Kind          string   `json:"kind,omitempty"`
	Items         []Object `json:"items,omitempty"`
	Prefixes      []string `json:"prefixes,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}
