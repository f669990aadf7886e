package gitlet

// Digest is a content identifier: 40 lowercase hex characters.
type Digest string

// Short returns the abbreviated form used in log output.
func (d Digest) Short() string {
	if len(d) < 7 {
		return string(d)
	}
	return string(d[:7])
}

func (d Digest) String() string { return string(d) }
