// Host-side stress and soak tool for the dmalog ring: many goroutine
// producers against one drain path, with throughput and loss accounting.
// Build with -tags dmalogdebug for the internal counters.
package main

import (
	"flag"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/valyala/fastrand"

	"github.com/keanight/tinygo-dmalog/dmalog"
)

var (
	producers  = flag.Int("producers", 8, "concurrent producer goroutines")
	duration   = flag.Duration("duration", 5*time.Second, "how long to run")
	bufferSize = flag.Int("buffer", dmalog.DefaultBufferSize, "ring capacity in bytes")
	maxPayload = flag.Int("max-payload", 48, "maximum random payload length")
)

// countWriter counts what the transmitter actually put on the "wire".
type countWriter struct {
	n atomic.Int64
}

func (w *countWriter) Write(p []byte) (int, error) {
	w.n.Add(int64(len(p)))
	return len(p), nil
}

func main() {
	flag.Parse()
	defer glog.Flush()

	wire := &countWriter{}
	tx := dmalog.NewHostTransmitter(wire)
	defer tx.Close()
	l := dmalog.New(tx, dmalog.WithBufferSize(*bufferSize))

	glog.Infof("stress: %d producers, %s, %d byte ring", *producers, *duration, *bufferSize)

	var sent atomic.Int64
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(*producers)
	for id := 0; id < *producers; id++ {
		go func(id int) {
			defer wg.Done()
			var rng fastrand.RNG
			rng.Seed(uint32(id + 1))
			payload := make([]byte, *maxPayload)
			for i := range payload {
				payload[i] = 'a' + byte((id+i)%26)
			}
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				n := int(rng.Uint32n(uint32(*maxPayload))) + 1
				l.Logln(dmalog.Uint(uint64(id)), dmalog.Char(':'),
					dmalog.Int(int64(i)), dmalog.Char(' '),
					dmalog.Str(string(payload[:n])))
				sent.Add(1)
			}
		}(id)
	}

	time.Sleep(*duration)
	close(stop)
	wg.Wait()
	l.Flush()

	total := sent.Load()
	missed := int64(l.Missed())
	glog.Infof("messages: %d sent, %d missed (%.2f%% loss)",
		total, missed, 100*float64(missed)/float64(total))
	glog.Infof("wire: %d bytes (%.2f MB/s)",
		wire.n.Load(), float64(wire.n.Load())/1e6/duration.Seconds())

	rs, ts := l.DebugStats()
	glog.Infof("debug counters: ring=%+v transfer=%+v", rs, ts)

	if l.Buffered() != 0 {
		glog.Errorf("ring not drained after flush: %d bytes left", l.Buffered())
	}
}
