/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	cli "github.com/jawher/mow.cli"
	"go.uber.org/zap"

	"github.com/ibm/sfrest/client"
	"github.com/ibm/sfrest/config"
	"github.com/ibm/sfrest/connection"
	"github.com/ibm/sfrest/logger"
)

var (
	Version = "undefined"

	netTransport = &http.Transport{
		TLSHandshakeTimeout: 5 * time.Second,
	}
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load sfrest config: %s\n", err.Error())
		os.Exit(1)
	}

	logr, err := logger.NewLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %s\n", err.Error())
		os.Exit(1)
	}
	defer logr.Sync()

	connection.Version = Version
	logr = logr.With(logger.FieldClientVersion, Version)
	logr.Debugf("Site Factory URL: %s", cfg.URL)
	logr.Debugf("Request timeout: %s", cfg.Timeout)

	newClient := func() (*client.Client, error) {
		return client.New(*cfg, &http.Client{Transport: netTransport, Timeout: cfg.Timeout}, logr)
	}

	app := newApp(os.Stdout, logr, newClient)
	if err := app.Run(os.Args); err != nil {
		logr.With(zap.Error(err)).Error("unable to run command")
		cli.Exit(1)
	}
}
