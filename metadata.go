package portage

import (
	"context"
	"time"

	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/transport/rest"
)

// MetadataService serves the filter option lists.
type MetadataService struct {
	api *rest.Client
	obs *observer
}

// Options fetches the filter option lists. The filter panels must stay
// usable without the endpoint, so a failed fetch returns the static sets
// and a partial response is filled per list; the error is reported
// alongside so hosts can surface it.
func (s *MetadataService) Options(ctx context.Context) (Metadata, error) {
	start := time.Now()
	meta, err := s.api.Metadata(ctx)
	s.obs.observe("metadata.options", start, err)
	if err != nil {
		return catalog.StaticMetadata(), err
	}
	return meta.WithFallbacks(), nil
}

// StaticOptions returns the built-in fallback option sets.
func StaticOptions() Metadata {
	return catalog.StaticMetadata()
}
