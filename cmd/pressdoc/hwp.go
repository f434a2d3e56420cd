package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/pressdoc"
	pressdocfs "github.com/fwojciec/pressdoc/fs"
	"github.com/fwojciec/pressdoc/goquery"
)

// Run executes the hwp command.
func (c *HwpCmd) Run(deps *Dependencies) error {
	if c.Download != "" {
		if err := c.download(deps); err != nil {
			return err
		}
	}

	paths, err := hwpFiles(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(deps.Stderr, "No HWP files found in %s\n", c.Dir)
		return pressdoc.Errorf(pressdoc.ENOTFOUND, "no HWP files in %s", c.Dir)
	}

	infos := []pressdoc.PressInfo{}
	for _, path := range paths {
		info, err := c.parse(deps, path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", filepath.Base(path), pressdoc.ErrorMessage(err))
			continue
		}
		infos = append(infos, info)
		s := info.Summary()
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\n", s.Filename, s.Date, s.Title)
	}

	if c.JSON != "" {
		data, err := pressdocfs.MarshalOutput(infos)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.JSON, data, 0o644); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	}
	if c.Xlsx != "" {
		summaries := make([]pressdoc.DocumentSummary, len(infos))
		for i := range infos {
			summaries[i] = infos[i].Summary()
		}
		if err := deps.Exporter.Export(c.Xlsx, summaries); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Xlsx)
	}

	fmt.Fprintf(deps.Stdout, "Parsed %d of %d files\n", len(infos), len(paths))
	return nil
}

func (c *HwpCmd) parse(deps *Dependencies, path string) (pressdoc.PressInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return pressdoc.PressInfo{}, err
	}
	defer f.Close()

	name := filepath.Base(path)
	doc, err := deps.Documents.Parse(deps.Ctx, name, f)
	if err != nil {
		return pressdoc.PressInfo{}, err
	}
	return pressdoc.PressInfo{
		Filename:  name,
		PressMeta: goquery.ExtractPressMeta(doc.MetaTableHTML()),
		PressText: pressdoc.ExtractPressText(doc),
	}, nil
}

// download saves the HWP attachments of a crawl output into the directory.
// Files already present are kept.
func (c *HwpCmd) download(deps *Dependencies) error {
	articles, err := readArticles(c.Download)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressdoc.ErrorMessage(err))
		return err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}

	var downloaded int
	for _, a := range articles {
		for _, att := range a.Attachments {
			if att.Type != "hwp" {
				continue
			}
			target := filepath.Join(c.Dir, filepath.Base(att.Filename))
			if _, err := os.Stat(target); err == nil {
				continue
			}
			if err := c.downloadFile(deps, att.URL, target); err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", att.Filename, err)
				continue
			}
			downloaded++
		}
	}
	fmt.Fprintf(deps.Stdout, "Downloaded %d attachments\n", downloaded)
	return nil
}

func (c *HwpCmd) downloadFile(deps *Dependencies, url, target string) error {
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	_, err = deps.Downloader.Download(deps.Ctx, url, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(target)
	}
	return err
}

// hwpFiles lists the .hwp files of dir in name order.
func hwpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pressdoc.Errorf(pressdoc.ENOTFOUND, "directory %s does not exist", dir)
	} else if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".hwp") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
