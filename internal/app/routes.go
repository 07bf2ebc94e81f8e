package app

import (
	"github.com/jmylchreest/appshell/internal/pages"
	"github.com/jmylchreest/appshell/internal/router"
	"github.com/jmylchreest/appshell/internal/theme"
)

// HomePath is the landing route.
const HomePath = "/"

// NewRouter builds the application route table. Pages that read or set
// the theme receive store explicitly.
func NewRouter(store *theme.Store) (*router.Router, error) {
	r := router.New(pages.NewNotFound())
	if err := r.Register(HomePath, pages.NewHome(store)); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRouter is like NewRouter but panics if the table is invalid.
func MustNewRouter(store *theme.Store) *router.Router {
	r, err := NewRouter(store)
	if err != nil {
		panic(err)
	}
	return r
}
