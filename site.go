package livefyre

// Site is a property of a network with its own signing key.
// It shares its parent's Network; the network must outlive the site.
type Site struct {
	network *Network
	id      string
	key     string
}

func (s *Site) ID() string          { return s.id }
func (s *Site) Key() string         { return s.key }
func (s *Site) Network() *Network   { return s.network }
func (s *Site) URN() string         { return s.network.URN() + ":site=" + s.id }
func (s *Site) NetworkName() string { return s.network.Name() }

// BuildSystemToken delegates to the parent network.
func (s *Site) BuildSystemToken() (string, error) {
	return s.network.BuildSystemToken()
}

// Collection builds a collection on this site.
func (s *Site) Collection(articleID, title, url string, opts *CollectionOptions) (*Collection, error) {
	return NewCollection(s, articleID, title, url, opts)
}
