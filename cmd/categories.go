package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dorkx-sec/dorkx-cli/internal/catalog"
	"github.com/dorkx-sec/dorkx-cli/internal/dork"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the query categories the scanner knows about",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		profile, _ := cmd.Flags().GetString("profile")

		if key != "" {
			return printCategoryDetail(key)
		}

		categories := catalog.AllCategories()
		if profile != "" {
			selected := dork.CategoriesFor(dork.ParseProfile(profile))
			inProfile := make(map[string]struct{}, len(selected))
			for _, k := range selected {
				inProfile[k] = struct{}{}
			}
			filtered := categories[:0]
			for _, c := range categories {
				if _, ok := inProfile[c.Key]; ok {
					filtered = append(filtered, c)
				}
			}
			categories = filtered
		}

		fmt.Printf("%-26s %-32s %-10s %8s\n", "KEY", "NAME", "RISK", "QUERIES")
		for _, c := range categories {
			fmt.Printf("%-26s %-32s %-10s %8d\n",
				c.Key, c.Name, formatTierWithColor(c.RiskTier), len(c.Templates))
		}
		fmt.Printf("\n%d categories", len(categories))
		if profile != "" {
			fmt.Printf(" in profile %s", dork.ParseProfile(profile))
		}
		fmt.Println()
		return nil
	},
}

func printCategoryDetail(key string) error {
	c, ok := catalog.CategoryInfo(key)
	if !ok {
		return fmt.Errorf("unknown category: %s", key)
	}

	fmt.Printf("Category: %s (%s)\n", c.Name, c.Key)
	fmt.Printf("Risk:     %s\n", formatTierWithColor(c.RiskTier))
	fmt.Printf("About:    %s\n", c.Description)
	if c.WhyItMatters != "" {
		fmt.Printf("Impact:   %s\n", c.WhyItMatters)
	}
	if len(c.WhatCanBeFound) > 0 {
		fmt.Println("\nWhat can be found:")
		for _, item := range c.WhatCanBeFound {
			fmt.Printf("  - %s\n", item)
		}
	}
	fmt.Printf("\nQuery templates (%d):\n", len(c.Templates))
	for _, t := range c.Templates {
		fmt.Printf("  %s\n", t)
	}
	return nil
}

func init() {
	categoriesCmd.Flags().String("key", "", "Show the full detail of one category")
	categoriesCmd.Flags().String("profile", "", "Only list categories in this profile (quick, standard, deep)")
}
