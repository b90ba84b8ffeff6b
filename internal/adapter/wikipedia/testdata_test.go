package wikipedia

import (
	"io"
	"log/slog"

	"github.com/couchcryptid/landmask-etl/internal/observability"
)

const meridianPage = `<!DOCTYPE html>
<html><body>
<table class="infobox"><tr><td><span class="geo">1; 1</span></td></tr></table>
<table class="wikitable sortable">
<tr><th>Co-ordinates</th><th>Country, territory or sea</th></tr>
<tr><td style="background:#b0e0e6;"><span class="geo-dec">90°N 0°E</span><span class="geo">90.0000; 0.0000</span></td><td>Arctic Ocean</td></tr>
<tr><td><span class="geo">51.4778; -0.0015</span></td><td>United Kingdom</td></tr>
<tr><td style="background:#b0e0e6;"><span class="geo">-60; 0</span></td><td>Southern Ocean</td></tr>
<tr><td>no coordinates here</td></tr>
<tr><td><span class="geo">north; 1</span></td></tr>
</table>
<table class="wikitable"><tr><td><span class="geo">10; 10</span></td></tr></table>
</body></html>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}
