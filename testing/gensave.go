// Generates a synthetic Stardew Valley save directory for trying farmswap
// by hand: a SaveGameInfo marker plus a save file named after the
// directory, with one host and a configurable number of farmhands.
//
// Usage: go run ./testing <dir> [farmhands]
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: gensave <dir> [farmhands]")
	}
	dir := os.Args[1]
	count := 2
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 0 {
			log.Fatalf("bad farmhand count %q", os.Args[2])
		}
		count = n
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("creating %s: %v", dir, err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("SaveGame")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	root.CreateAttr("xmlns:xsd", "http://www.w3.org/2001/XMLSchema")

	addFarmer(root, "player", "Host", 1000, "FarmHouse")

	hands := root.CreateElement("farmhands")
	for i := 1; i <= count; i++ {
		addFarmer(hands, "Farmer", fmt.Sprintf("Hand%d", i), int64(1000+i),
			fmt.Sprintf("Cabin%d", i))
	}

	buildings := root.CreateElement("locations").
		CreateElement("GameLocation").
		CreateElement("buildings")
	for i := 1; i <= count; i++ {
		b := buildings.CreateElement("Building")
		b.CreateElement("buildingType").SetText("Cabin")
		b.CreateElement("owner").SetText(strconv.FormatInt(int64(1000+i), 10))
	}

	doc.Indent(4)
	out, err := doc.WriteToBytes()
	if err != nil {
		log.Fatalf("serializing: %v", err)
	}

	path := filepath.Join(dir, filepath.Base(dir))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Fatalf("writing %s: %v", path, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SaveGameInfo"), []byte("synthetic"), 0o644); err != nil {
		log.Fatalf("writing SaveGameInfo: %v", err)
	}

	fmt.Printf("Wrote %s with 1 host and %d farmhands\n", path, count)
}

func addFarmer(parent *etree.Element, tag, name string, id int64, home string) {
	f := parent.CreateElement(tag)
	f.CreateElement("name").SetText(name)
	f.CreateElement("UniqueMultiplayerID").SetText(strconv.FormatInt(id, 10))
	f.CreateElement("homeLocation").SetText(home)
	f.CreateElement("money").SetText("500")
	items := f.CreateElement("items")
	items.CreateElement("Item").CreateElement("name").SetText("Axe")
	items.CreateElement("Item").CreateElement("name").SetText("Hoe")
}
