// Package statsview serves live runtime statistics of the process, such as
// heap usage and goroutine counts, as charts in the browser.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the listen address of the statistics server.
const Address = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the statistics server in the background.
func Launch(logger *log.Logger) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()
	go mgr.Start()

	logger.Info("Stats server available", log.String("url", "http://"+Address+path))
}
