package main

import "github.com/KondratDima/TrackCaloryGraduationProject/cmd/trackcal"

func main() {
	trackcal.Execute()
}
