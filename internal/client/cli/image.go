package cli

import (
	"fmt"

	"github.com/dmitrijs2005/clubportal/internal/client/services"
	"github.com/dmitrijs2005/clubportal/internal/filex"
)

// openImage opens the file at path for upload. The returned func closes it.
func openImage(path string) (*services.Image, func(), error) {
	f, name, err := filex.OpenRegular(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open image: %w", err)
	}
	return &services.Image{Name: name, Content: f}, func() { f.Close() }, nil
}

// optionalImage opens the image named by the first of args, if any.
func optionalImage(args []string) (*services.Image, func(), error) {
	if len(args) == 0 {
		return nil, func() {}, nil
	}
	return openImage(args[0])
}
