package catalog

const hf = "https://huggingface.co/"

var builtin = []Entry{
	{ID: "gemma-3-1b", Family: "Gemma 3", Size: "1B", FileSize: 2_010_000_000, URL: hf + "ggml-org/gemma-3-1b-it-GGUF/resolve/main/gemma-3-1b-it-f16.gguf"},
	{ID: "gemma-3-4b-q4", Family: "Gemma 3", Size: "4B", Quantization: "Q4_K_M", FileSize: 2_490_000_000, URL: hf + "ggml-org/gemma-3-4b-it-GGUF/resolve/main/gemma-3-4b-it-Q4_K_M.gguf"},
	{ID: "gemma-3-4b", Family: "Gemma 3", Size: "4B", Quantization: "F16", FileSize: 7_770_000_000, URL: hf + "ggml-org/gemma-3-4b-it-GGUF/resolve/main/gemma-3-4b-it-f16.gguf"},
	{ID: "gemma-3-12b-q4", Family: "Gemma 3", Size: "12B", Quantization: "Q4_K_M", FileSize: 7_300_000_000, URL: hf + "ggml-org/gemma-3-12b-it-GGUF/resolve/main/gemma-3-12b-it-Q4_K_M.gguf"},
	{ID: "qwen3-0.6b", Family: "Qwen3", Size: "0.6B", FileSize: 1_280_000_000, URL: hf + "ggml-org/Qwen3-0.6B-GGUF/resolve/main/Qwen3-0.6B-f16.gguf"},
	{ID: "qwen3-4b", Family: "Qwen3", Size: "4B", FileSize: 8_050_000_000, URL: hf + "ggml-org/Qwen3-4B-GGUF/resolve/main/Qwen3-4B-f16.gguf"},
	{ID: "qwen3-8b-q4", Family: "Qwen3", Size: "8B", Quantization: "Q4_K_M", FileSize: 5_030_000_000, URL: hf + "ggml-org/Qwen3-8B-GGUF/resolve/main/Qwen3-8B-Q4_K_M.gguf"},
	{ID: "qwen3-30b-a3b-q4", Family: "Qwen3", Size: "30B", Quantization: "Q4_K_M", FileSize: 18_600_000_000, URL: hf + "ggml-org/Qwen3-30B-A3B-GGUF/resolve/main/Qwen3-30B-A3B-Q4_K_M.gguf"},
	{ID: "gpt-oss-20b", Family: "gpt-oss", Size: "20B", Quantization: "MXFP4", FileSize: 12_100_000_000, URL: hf + "ggml-org/gpt-oss-20b-GGUF/resolve/main/gpt-oss-20b-mxfp4.gguf"},
	{ID: "smollm3-3b", Family: "SmolLM3", Size: "3B", FileSize: 6_160_000_000, URL: hf + "ggml-org/SmolLM3-3B-GGUF/resolve/main/SmolLM3-f16.gguf"},
}

// Default returns the built-in catalog sized against this machine.
func Default() *Catalog {
	return New(builtin, MemoryBytes())
}
