package main

import (
	"encoding/json"
	"os"
)

// Config holds flags shared across benthctl's subcommands. A subset
// applies to any given subcommand; unused fields are simply ignored.
type Config struct {
	Volume      string `json:"volume"`
	DataShard   int    `json:"datashard"`
	ParityShard int    `json:"parityshard"`
	ShardSize   int    `json:"shardsize"`
	Seconds     int    `json:"seconds"`
}

// parseJSONConfig overrides config with the contents of a JSON file,
// matching kcptun server's -c flag behavior.
func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewDecoder(file).Decode(config)
}
