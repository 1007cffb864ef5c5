package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/eoslab/internal/config"
	"github.com/san-kum/eoslab/internal/dataset"
	"github.com/san-kum/eoslab/internal/eos"
	"github.com/san-kum/eoslab/internal/fit"
	"github.com/san-kum/eoslab/internal/quantity"
	"github.com/san-kum/eoslab/internal/report"
)

var (
	configFile string
	volume     float64
	volumeSig  float64
	temp       float64
	tempSig    float64
	pressure   float64
	pressSig   float64
	vmin       float64
	vmax       float64
	points     int
	freeList   string
	weighted   bool
	noPlot     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eoslab",
		Short: "mineral physics equation-of-state toolkit",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	pressureCmd := &cobra.Command{
		Use:   "pressure",
		Short: "compute P(V,T)",
		RunE:  runPressure,
	}
	pressureCmd.Flags().Float64Var(&volume, "v", 0, "unit-cell volume (A^3)")
	pressureCmd.Flags().Float64Var(&volumeSig, "sv", 0, "volume uncertainty")
	pressureCmd.Flags().Float64Var(&temp, "t", 300, "temperature (K)")
	pressureCmd.Flags().Float64Var(&tempSig, "st", 0, "temperature uncertainty")
	pressureCmd.MarkFlagRequired("v")

	volumeCmd := &cobra.Command{
		Use:   "volume",
		Short: "invert V(P,T)",
		RunE:  runVolume,
	}
	volumeCmd.Flags().Float64Var(&pressure, "p", 0, "pressure (GPa)")
	volumeCmd.Flags().Float64Var(&pressSig, "sp", 0, "pressure uncertainty")
	volumeCmd.Flags().Float64Var(&temp, "t", 300, "temperature (K)")
	volumeCmd.Flags().Float64Var(&tempSig, "st", 0, "temperature uncertainty")
	volumeCmd.MarkFlagRequired("p")

	isothermCmd := &cobra.Command{
		Use:   "isotherm",
		Short: "tabulate P(V) at fixed T",
		RunE:  runIsotherm,
	}
	isothermCmd.Flags().Float64Var(&temp, "t", 300, "temperature (K)")
	isothermCmd.Flags().Float64Var(&vmin, "vmin", 0, "lowest volume (default 0.7*v0)")
	isothermCmd.Flags().Float64Var(&vmax, "vmax", 0, "highest volume (default v0)")
	isothermCmd.Flags().IntVar(&points, "points", 30, "number of points")

	fitCmd := &cobra.Command{
		Use:   "fit [data.csv]",
		Short: "fit EOS parameters to P-V-T data",
		Args:  cobra.ExactArgs(1),
		RunE:  runFit,
	}
	fitCmd.Flags().StringVar(&freeList, "free", "", "comma-separated free parameters (overrides config)")
	fitCmd.Flags().BoolVar(&weighted, "weighted", true, "weight by 1/sigma(P)^2")
	fitCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip residual plot")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	configCmd.AddCommand(configInitCmd)

	invertCmd := &cobra.Command{
		Use:   "invert [data.csv]",
		Short: "solve V for every (P,T) row in a dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runInvert,
	}

	rootCmd.AddCommand(pressureCmd, volumeCmd, isothermCmd, fitCmd, invertCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func buildModel(cfg *config.Config) (*eos.MieGruneisen, error) {
	p, err := eos.ParamsFrom(cfg.ParameterSet())
	if err != nil {
		return nil, err
	}
	return eos.New(cfg.Static, cfg.Thermal, p)
}

func runPressure(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	model, err := buildModel(cfg)
	if err != nil {
		return err
	}
	p, err := model.Pressure(quantity.New(volume, volumeSig), quantity.New(temp, tempSig))
	if err != nil {
		return err
	}
	fmt.Printf("P = %.4f ± %.4f GPa  (%s+%s, V=%g A^3, T=%g K)\n",
		p.Value, p.Sigma, cfg.Static, cfg.Thermal, volume, temp)
	return nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	model, err := buildModel(cfg)
	if err != nil {
		return err
	}

	p := quantity.New(pressure, pressSig)
	t := quantity.New(temp, tempSig)

	var v quantity.Quantity
	if cfg.Solve.BracketLo > 0 && cfg.Solve.BracketHi > cfg.Solve.BracketLo {
		v0 := cfg.Params.V0.Value
		v, err = model.VolumeIn(p, t, cfg.Solve.BracketLo*v0, cfg.Solve.BracketHi*v0)
	} else {
		v, err = model.Volume(p, t)
	}
	if err != nil {
		return err
	}
	fmt.Printf("V = %.4f ± %.4f A^3  (P=%g GPa, T=%g K)\n", v.Value, v.Sigma, pressure, temp)
	return nil
}

func runIsotherm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	model, err := buildModel(cfg)
	if err != nil {
		return err
	}

	v0 := cfg.Params.V0.Value
	lo, hi := vmin, vmax
	if lo <= 0 {
		lo = 0.7 * v0
	}
	if hi <= 0 {
		hi = v0
	}
	if points < 2 {
		points = 2
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "V (A^3)\tV/V0\tP (GPa)")

	// Sweep from compressed to relaxed so the plot reads low P on the
	// right.
	pressures := make([]float64, points)
	for i := 0; i < points; i++ {
		v := lo + (hi-lo)*float64(i)/float64(points-1)
		p, err := model.Pressure(quantity.Exact(v), quantity.Exact(temp))
		if err != nil {
			return err
		}
		pressures[i] = p.Value
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\n", v, v/v0, p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(report.IsothermPlot(pressures, temp))
	return nil
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	obs, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	free := cfg.Fit.Free
	if freeList != "" {
		free = strings.Split(freeList, ",")
		for i := range free {
			free[i] = strings.TrimSpace(free[i])
		}
	}

	res, err := fit.Fit(obs, fit.Options{
		StaticFamily:  cfg.Static,
		ThermalFamily: cfg.Thermal,
		Free:          free,
		Start:         cfg.ParameterSet(),
		Weighted:      weighted,
		MaxIterations: cfg.Fit.MaxIterations,
	})
	if err != nil {
		return err
	}

	if err := report.WriteFit(os.Stdout, res, free); err != nil {
		return err
	}
	if !noPlot {
		fmt.Println()
		fmt.Println(report.ResidualPlot(res.Residuals))
	}
	return nil
}

func runInvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	model, err := buildModel(cfg)
	if err != nil {
		return err
	}
	obs, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	conditions := make([]eos.PT, 0, len(obs))
	for _, o := range obs {
		if !o.HasPressure {
			return fmt.Errorf("invert: observation without pressure")
		}
		conditions = append(conditions, eos.PT{P: o.P, T: o.T})
	}

	vols, err := model.Volumes(cmd.Context(), conditions)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "P (GPa)\tT (K)\tV (A^3)\tSV")
	for i, c := range conditions {
		fmt.Fprintf(w, "%.4f\t%.1f\t%.4f\t%.4f\n",
			c.P.Value, c.T.Value, vols[i].Value, vols[i].Sigma)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "eoslab.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}
