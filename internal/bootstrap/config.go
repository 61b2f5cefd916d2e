package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/shengfai/socialite/cmd/flags"
	"github.com/shengfai/socialite/internal/conf"
	"github.com/shengfai/socialite/utils"
	log "github.com/sirupsen/logrus"
)

func InitDefaultConfig(ctx context.Context) error {
	conf.Conf = conf.DefaultConfig()
	return nil
}

func InitConfig(ctx context.Context) (err error) {
	if flags.Server.SkipConfig && flags.Server.SkipEnvConfig {
		return errors.New("skip config and skip env at the same time")
	}
	conf.Conf = conf.DefaultConfig()
	if !flags.Server.SkipConfig {
		configFile, err := utils.OptFilePath(flags.Global.DataDir, "config.yaml")
		if err != nil {
			return err
		}
		err = confFromConfig(configFile, conf.Conf)
		if err != nil {
			return err
		}
		log.Infof("load config success from file: %s", configFile)
		if err = restoreConfig(configFile, conf.Conf); err != nil {
			log.Warnf("restore config error: %v", err)
		} else {
			log.Debug("restore config success")
		}
	}
	if !flags.Server.SkipEnvConfig {
		prefix := flags.ENV_PREFIX
		if flags.EnvNoPrefix {
			prefix = ""
			log.Info("load config from env without prefix")
		} else {
			log.Infof("load config from env with prefix: %s", prefix)
		}
		err := confFromEnv(prefix, conf.Conf)
		if err != nil {
			return err
		}
		log.Info("load config success from env")
	}
	return nil
}

func confFromConfig(filePath string, conf *conf.Config) error {
	if filePath == "" {
		return errors.New("config file path is empty")
	}
	if !utils.Exists(filePath) {
		log.Infof("config file not exists, create new config file: %s", filePath)
		return conf.Save(filePath)
	}
	return utils.ReadYaml(filePath, conf)
}

// restoreConfig rewrites the file so options added since it was created
// show up with their defaults and comments.
func restoreConfig(filePath string, conf *conf.Config) error {
	if filePath == "" {
		return errors.New("config file path is empty")
	}
	return conf.Save(filePath)
}

func confFromEnv(prefix string, conf *conf.Config) error {
	s, err := getEnvFiles(flags.Global.DataDir)
	if err != nil {
		return err
	}
	if flags.Global.Dev {
		ss, err := getEnvFiles(".")
		if err != nil {
			return err
		}
		s = append(s, ss...)
	}
	if len(s) != 0 {
		err = godotenv.Overload(s...)
		if err != nil {
			return err
		}
	}
	return env.ParseWithOptions(conf, env.Options{
		Prefix: prefix,
	})
}

// getEnvFiles lists the .env* files directly inside root.
func getEnvFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), ".env") {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	return files, nil
}
