package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openseis/waveclient/internal/errs"
	"github.com/openseis/waveclient/internal/models"
	"github.com/openseis/waveclient/internal/naming"
)

// NetworkFinder is the network/station metadata capability.
type NetworkFinder interface {
	// RetrieveByCode returns the networks published under a network code.
	RetrieveByCode(ctx context.Context, networkCode string) ([]models.Network, error)

	// RetrieveAll returns every published network.
	RetrieveAll(ctx context.Context) ([]models.Network, error)

	// RetrieveStations returns all stations of a network.
	RetrieveStations(ctx context.Context, networkCode string) ([]models.Station, error)

	// RetrieveChannelsByCode returns the channels matching the given station,
	// location and channel codes within a network.
	RetrieveChannelsByCode(ctx context.Context, networkCode, stationCode, locationCode, channelCode string) ([]models.Channel, error)

	// RetrieveInstrumentation returns the instrument record for a channel
	// effective at the given instant.
	RetrieveInstrumentation(ctx context.Context, id models.ChannelID, at time.Time) (models.Instrumentation, error)
}

// ResolveFinder asks a network DC reference for its finder object, mirroring
// the directory's two-step access to the metadata capability.
func ResolveFinder(ctx context.Context, client *http.Client, dc naming.ObjectRef) (naming.ObjectRef, error) {
	if err := dc.Narrow(CapabilityNetworkDC); err != nil {
		return naming.ObjectRef{}, err
	}
	var finder naming.ObjectRef
	if err := getJSON(ctx, client, strings.TrimRight(dc.Endpoint, "/")+"/finder", &finder); err != nil {
		return naming.ObjectRef{}, err
	}
	if err := finder.Narrow(CapabilityNetworkFinder); err != nil {
		return naming.ObjectRef{}, err
	}
	return finder, nil
}

// HTTPNetworkFinder is the HTTP/JSON implementation of NetworkFinder.
type HTTPNetworkFinder struct {
	endpoint string
	client   *http.Client
}

var _ NetworkFinder = (*HTTPNetworkFinder)(nil)

// NewNetworkFinder builds a finder client against a resolved endpoint.
func NewNetworkFinder(endpoint string, client *http.Client) *HTTPNetworkFinder {
	return &HTTPNetworkFinder{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
	}
}

func (f *HTTPNetworkFinder) RetrieveByCode(ctx context.Context, networkCode string) ([]models.Network, error) {
	var networks []models.Network
	u := f.endpoint + "/networks?code=" + url.QueryEscape(networkCode)
	if err := getJSON(ctx, f.client, u, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

func (f *HTTPNetworkFinder) RetrieveAll(ctx context.Context) ([]models.Network, error) {
	var networks []models.Network
	if err := getJSON(ctx, f.client, f.endpoint+"/networks", &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

func (f *HTTPNetworkFinder) RetrieveStations(ctx context.Context, networkCode string) ([]models.Station, error) {
	if networkCode == "" {
		return nil, fmt.Errorf("%w: network code is empty", errs.ErrConfig)
	}
	var stations []models.Station
	u := f.endpoint + "/networks/" + url.PathEscape(networkCode) + "/stations"
	if err := getJSON(ctx, f.client, u, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func (f *HTTPNetworkFinder) RetrieveChannelsByCode(ctx context.Context, networkCode, stationCode, locationCode, channelCode string) ([]models.Channel, error) {
	if networkCode == "" {
		return nil, fmt.Errorf("%w: network code is empty", errs.ErrConfig)
	}
	q := url.Values{}
	q.Set("station", stationCode)
	q.Set("location", locationCode)
	q.Set("channel", channelCode)
	u := f.endpoint + "/networks/" + url.PathEscape(networkCode) + "/channels?" + q.Encode()

	var channels []models.Channel
	if err := getJSON(ctx, f.client, u, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (f *HTTPNetworkFinder) RetrieveInstrumentation(ctx context.Context, id models.ChannelID, at time.Time) (models.Instrumentation, error) {
	q := url.Values{}
	q.Set("station", id.StationCode)
	q.Set("location", id.LocationCode)
	q.Set("channel", id.ChannelCode)
	q.Set("time", at.UTC().Format(time.RFC3339Nano))
	u := f.endpoint + "/networks/" + url.PathEscape(id.NetworkCode) + "/instrumentation?" + q.Encode()

	var inst models.Instrumentation
	if err := getJSON(ctx, f.client, u, &inst); err != nil {
		return models.Instrumentation{}, err
	}
	return inst, nil
}
