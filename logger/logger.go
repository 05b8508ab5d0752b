package logger

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"

	"nagoyameshi/config"
)

const appName = "nagoyameshi"

var std = logrus.New()

// Log returns the process wide logger.
func Log() *logrus.Logger {
	return std
}

// Init configures the process wide logger: level, stdout plus an optional log file,
// and the logstash / elasticsearch hooks when enabled.
func Init(conf config.Configuration) *logrus.Logger {
	l := New(conf)
	std = l
	return l
}

func New(conf config.Configuration) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.Out = os.Stdout
	if conf.LogPath != "" {
		if f, err := openLogFile(conf.LogPath); err != nil {
			fmt.Println("logger:", err.Error())
		} else {
			l.Out = io.MultiWriter(os.Stdout, f)
		}
	}

	if conf.Log.Elk.Enable {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{conf.Log.Elk.URL},
		})
		if err != nil {
			l.Warn(err.Error())
		} else if hook, err := elogrus.NewAsyncElasticHook(client, appName, level, conf.Log.Elk.Index); err != nil {
			l.Warn(err.Error())
		} else {
			l.Hooks.Add(hook)
		}
	}

	if conf.Log.Logstash.Enable {
		conn, err := net.Dial("udp", conf.Log.Logstash.URL)
		if err != nil {
			l.Warn(err.Error())
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": appName}))
			l.Hooks.Add(hook)
		}
	}

	return l
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
