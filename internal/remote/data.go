package remote

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/openseis/waveclient/internal/models"
)

// RequestFilter selects one channel over one time range.
type RequestFilter struct {
	Channel models.ChannelID `json:"channel_id"`
	Start   time.Time        `json:"start"`
	End     time.Time        `json:"end"`
}

// DataCenter is the waveform retrieval capability.
type DataCenter interface {
	// RetrieveSeismograms returns zero or more segments covering the
	// requested filters, in service order.
	RetrieveSeismograms(ctx context.Context, filters []RequestFilter) ([]models.Segment, error)
}

// HTTPDataCenter is the HTTP/JSON implementation of DataCenter.
type HTTPDataCenter struct {
	endpoint string
	client   *http.Client
}

var _ DataCenter = (*HTTPDataCenter)(nil)

// NewDataCenter builds a data-center client against a resolved endpoint.
func NewDataCenter(endpoint string, client *http.Client) *HTTPDataCenter {
	return &HTTPDataCenter{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
	}
}

func (d *HTTPDataCenter) RetrieveSeismograms(ctx context.Context, filters []RequestFilter) ([]models.Segment, error) {
	var segments []models.Segment
	if err := postJSON(ctx, d.client, d.endpoint+"/seismograms", filters, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}
