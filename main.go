package main

import (
	"github.com/sirupsen/logrus"

	"github.com/jumpei00/gostockanalysis/app/models"
	"github.com/jumpei00/gostockanalysis/app/server"
	"github.com/jumpei00/gostockanalysis/config"
	"github.com/jumpei00/gostockanalysis/log"
	"github.com/jumpei00/gostockanalysis/stock"
)

func main() {
	config.InitConfig()
	log.SetLogging()
	models.InitDB()
	if err := stock.InitSampleData(config.Config.DataDir); err != nil {
		logrus.Warnf("sample data load error: %v", err)
	}
	server.Run()
}
