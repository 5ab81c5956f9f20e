// Package naming talks to the remote directory service that maps composed
// object names to service references.
package naming

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/openseis/waveclient/internal/errs"
)

// Component kinds used when composing lookup names.
const (
	KindDNS       = "dns"
	KindInterface = "interface"
	KindObject    = "object_v1.0"
)

// rootComponent prefixes every composed name.
const rootComponent = "Fissures"

// NameComponent is one element of a composed lookup name.
type NameComponent struct {
	ID   string
	Kind string
}

// ServiceLocator names one remote service: a namespace path like
// "/edu/iris/dmc" and the published object name within it.
type ServiceLocator struct {
	Path string `mapstructure:"path" yaml:"path"`
	Name string `mapstructure:"name" yaml:"name"`
}

// ComposeName builds the fully qualified lookup name for a service locator
// and interface tag: the fixed root, one dns component per path element, the
// interface component and the version-tagged object component.
func ComposeName(locator ServiceLocator, interfaceTag string) []NameComponent {
	comps := []NameComponent{{ID: rootComponent, Kind: KindDNS}}
	for _, id := range strings.Split(locator.Path, "/") {
		if id == "" {
			continue
		}
		comps = append(comps, NameComponent{ID: id, Kind: KindDNS})
	}
	comps = append(comps,
		NameComponent{ID: interfaceTag, Kind: KindInterface},
		NameComponent{ID: locator.Name, Kind: KindObject},
	)
	return comps
}

// Path renders components in the directory's textual form,
// e.g. "Fissures.dns/edu.dns/iris.dns/dmc.dns/NetworkDC.interface/IRIS_NetworkDC.object_v1.0".
func Path(comps []NameComponent) string {
	parts := make([]string, len(comps))
	for i, c := range comps {
		parts[i] = c.ID + "." + c.Kind
	}
	return strings.Join(parts, "/")
}

// ObjectRef is a resolved directory entry: where the object lives and which
// capability interfaces it supports.
type ObjectRef struct {
	Name       string   `json:"name"`
	Endpoint   string   `json:"endpoint"`
	Interfaces []string `json:"interfaces"`
}

// Narrow verifies the reference supports the requested capability.
func (r ObjectRef) Narrow(interfaceTag string) error {
	for _, tag := range r.Interfaces {
		if tag == interfaceTag {
			return nil
		}
	}
	return fmt.Errorf("%w: object %q cannot be narrowed to %s", errs.ErrConnection, r.Name, interfaceTag)
}

// Resolver resolves composed names against one directory service. Resolved
// references are cached for the resolver's lifetime; they are service
// handles, not data records.
type Resolver struct {
	base  string
	http  *http.Client
	cache *lru.Cache
	log   *logrus.Logger
}

// NewResolver builds a resolver for a directory address of the form
// "host:port" or "host:port/NameService".
func NewResolver(address string, client *http.Client, cacheSize int, log *logrus.Logger) (*Resolver, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: directory address is empty", errs.ErrConfig)
	}
	hostPort, _, _ := strings.Cut(address, "/")
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		base:  "http://" + hostPort,
		http:  client,
		cache: cache,
		log:   log,
	}, nil
}

// Resolve looks one composed name up and returns its object reference.
func (r *Resolver) Resolve(ctx context.Context, comps []NameComponent) (ObjectRef, error) {
	name := Path(comps)
	if cached, ok := r.cache.Get(name); ok {
		return cached.(ObjectRef), nil
	}

	lookup := r.base + "/resolve?name=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookup, nil)
	if err != nil {
		return ObjectRef{}, fmt.Errorf("%w: %v", errs.ErrConnection, err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return ObjectRef{}, fmt.Errorf("%w: directory lookup for %q: %v", errs.ErrConnection, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ObjectRef{}, fmt.Errorf("%w: no directory entry for %q", errs.ErrNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return ObjectRef{}, fmt.Errorf("%w: directory lookup for %q: status %s", errs.ErrConnection, name, resp.Status)
	}

	var ref ObjectRef
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return ObjectRef{}, fmt.Errorf("%w: directory reply for %q: %v", errs.ErrFormat, name, err)
	}

	r.cache.Add(name, ref)
	r.log.WithFields(logrus.Fields{
		"name":     name,
		"endpoint": ref.Endpoint,
	}).Debug("resolved directory entry")
	return ref, nil
}

// ResolveNarrowed resolves a name and narrows the result in one step.
func (r *Resolver) ResolveNarrowed(ctx context.Context, comps []NameComponent, interfaceTag string) (ObjectRef, error) {
	ref, err := r.Resolve(ctx, comps)
	if err != nil {
		return ObjectRef{}, err
	}
	if err := ref.Narrow(interfaceTag); err != nil {
		return ObjectRef{}, err
	}
	return ref, nil
}
