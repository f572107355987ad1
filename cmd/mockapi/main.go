package main

import (
	"fmt"
	"log"

	"sidifa/portal/config"
	"sidifa/portal/internal/mockapi"

	"github.com/gin-gonic/gin"
)

func main() {
	config.MustLoad("config.yaml")
	gin.SetMode(config.Conf.Mock.Mode)

	srv, err := mockapi.New(mockapi.OptionsFromConfig(config.Conf))
	if err != nil {
		log.Fatalf("mock 后端初始化失败: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", config.Conf.Mock.Host, config.Conf.Mock.Port)
	if err := srv.Run(addr); err != nil {
		log.Fatalf("mock 后端退出: %v", err)
	}
}
