package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultPublished = "published"
	ResultFailed    = "failed"
	ResultDropped   = "dropped"
)

type Orders struct {
	Placed        prometheus.Counter
	Announcements *prometheus.CounterVec
}

func NewOrders(reg prometheus.Registerer) *Orders {
	m := &Orders{
		Placed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total order placement requests answered",
		}),
		Announcements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_announcements_total",
			Help: "Order placed announcements by publish result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Placed, m.Announcements)
	return m
}
