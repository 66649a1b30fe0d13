package main

import (
	"fmt"

	"github.com/zxdong262/task-runner/internal/common"
	"github.com/zxdong262/task-runner/internal/manager"
	"github.com/zxdong262/task-runner/internal/server"
)

func main() {
	common.InitConf()
	common.InitLog()

	config := common.GetConfig()
	logger := common.GetLogger()
	defer logger.Sync()

	mgr := manager.New(manager.Options{
		WorkDir: config.WorkDir,
		Logger:  logger,
	})
	defer mgr.Close()

	r := server.NewRouter(config, mgr)

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	logger.Sugar().Infow("task runner listening", "addr", addr, "workDir", config.WorkDir)

	if err := r.Run(addr); err != nil {
		panic(err)
	}
}
