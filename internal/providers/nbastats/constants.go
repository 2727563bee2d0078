package nbastats

import "time"

const (
	defaultBaseURL     = "https://stats.nba.com/stats"
	defaultHTTPTimeout = 15 * time.Second

	// The stats API rejects requests without browser-style headers.
	headerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	headerReferer   = "https://www.nba.com/"
	headerOrigin    = "https://www.nba.com"
)
