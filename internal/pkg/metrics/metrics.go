package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImagesUploaded counts image metadata records created after a
	// successful object-store write.
	ImagesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_images_uploaded_total",
		Help: "Number of images uploaded to object storage",
	})

	// AuthRequests counts auth operations by outcome.
	AuthRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_auth_requests_total",
		Help: "Number of auth requests by operation and result",
	}, []string{"operation", "result"})
)
