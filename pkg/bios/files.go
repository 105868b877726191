package bios

import (
	"os"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
)

func readFileLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return cpu.ReadLines(file)
}
