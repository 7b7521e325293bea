package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProtocolsCreated menghitung jumlah protokol yang dibuat (per batch di-add N).
	ProtocolsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "protokolku_protocols_created_total",
		Help: "Jumlah protokol yang berhasil dibuat.",
	})

	// StatusTransitions menghitung perpindahan status per status tujuan.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "protokolku_status_transitions_total",
		Help: "Jumlah transisi status protokol.",
	}, []string{"new_status"})

	// ScanLookups menghitung lookup kode lewat endpoint scan.
	ScanLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "protokolku_scan_lookups_total",
		Help: "Jumlah lookup kode oleh scanner.",
	})

	// LoginAttempts menghitung percobaan login per hasil (success/failed).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "protokolku_login_attempts_total",
		Help: "Jumlah percobaan login.",
	}, []string{"result"})
)
