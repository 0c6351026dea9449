//go:build !headless

// gpu_compute.go - Vulkan compute driver for the checksum search kernel

// SPDX-License-Identifier: GPL-3.0-or-later

/*
gpu_compute.go owns the Vulkan compute pipeline that runs the X-dependent
tail of round 1007 plus round 1008 across a batch of candidate X values
per dispatch. It exposes exactly the four operations the search
orchestrator needs: write the 16-word state, dispatch a batch, read the
4-word sticky result, and report the adapter name. There is no software
compute fallback - see gpu_compute_headless.go for the build-tagged
substitute used on machines without a Vulkan driver.
*/

package main

import (
	"fmt"
	"sync"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// bufferPair is a host-visible staging buffer paired with its device-local
// storage peer, mirroring the input/result buffer layout the kernel binds.
type bufferPair struct {
	hostBuffer   vk.Buffer
	hostMemory   vk.DeviceMemory
	deviceBuffer vk.Buffer
	deviceMemory vk.DeviceMemory
	size         vk.DeviceSize
}

// GPUComputeDriver owns the Vulkan instance, device, compute pipeline,
// bind group, and the input/result buffer pairs for one search run.
type GPUComputeDriver struct {
	mutex sync.Mutex

	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	deviceName     string
	device         vk.Device
	computeQueue   vk.Queue
	queueFamily    uint32

	descriptorSetLayout vk.DescriptorSetLayout
	descriptorPool      vk.DescriptorPool
	descriptorSet       vk.DescriptorSet
	pipelineLayout      vk.PipelineLayout
	pipeline            vk.Pipeline
	shaderModule        vk.ShaderModule

	input  bufferPair
	result bufferPair

	commandPool   vk.CommandPool
	commandBuffer vk.CommandBuffer
	fence         vk.Fence

	initialized bool
}

var vulkanComputeInitialized bool
var vulkanComputeInitMutex sync.Mutex

func init() {
	compiledFeatures = append(compiledFeatures, "gpu:vulkan")
}

// NewGPUComputeDriver constructs a driver. It never errors: initialization
// failures are reported through Init and the initialized flag, mirroring
// the graphics backend's own non-erroring constructor.
func NewGPUComputeDriver() (*GPUComputeDriver, error) {
	return &GPUComputeDriver{}, nil
}

// Init acquires a Vulkan-capable compute adapter with SPIR-V passthrough
// and push-constant support, and allocates the input/result buffer pairs.
// On failure it logs and leaves initialized false rather than returning an
// error: a checksum search has no legitimate software fallback at this
// scale, so the caller (not this driver) decides that failure is fatal.
func (d *GPUComputeDriver) Init() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err := d.initVulkan(); err != nil {
		fmt.Printf("GPU compute initialization failed: %v\n", err)
		d.initialized = false
		return nil
	}

	d.initialized = true
	return nil
}

// Initialized reports whether a usable Vulkan compute device was acquired.
func (d *GPUComputeDriver) Initialized() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.initialized
}

// AdapterName returns the selected physical device's name, empty before Init.
func (d *GPUComputeDriver) AdapterName() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.deviceName
}

func (d *GPUComputeDriver) initVulkan() error {
	vulkanComputeInitMutex.Lock()
	defer vulkanComputeInitMutex.Unlock()

	if !vulkanComputeInitialized {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return fmt.Errorf("failed to load Vulkan library: %w", err)
		}
		if err := vk.Init(); err != nil {
			return fmt.Errorf("failed to initialize Vulkan loader: %w", err)
		}
		vulkanComputeInitialized = true
	}

	if err := d.createInstance(); err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if err := d.selectPhysicalDevice(); err != nil {
		d.destroyInstance()
		return fmt.Errorf("failed to select physical device: %w", err)
	}
	if err := d.createDevice(); err != nil {
		d.destroyInstance()
		return fmt.Errorf("failed to create device: %w", err)
	}
	if err := d.createCommandPool(); err != nil {
		d.destroyDevice()
		d.destroyInstance()
		return fmt.Errorf("failed to create command pool: %w", err)
	}
	if err := d.createBuffers(); err != nil {
		d.destroyCommandPool()
		d.destroyDevice()
		d.destroyInstance()
		return fmt.Errorf("failed to create buffers: %w", err)
	}
	if err := d.createPipeline(); err != nil {
		d.destroyBuffers()
		d.destroyCommandPool()
		d.destroyDevice()
		d.destroyInstance()
		return fmt.Errorf("failed to create compute pipeline: %w", err)
	}
	if err := d.createCommandBuffer(); err != nil {
		d.destroyPipeline()
		d.destroyBuffers()
		d.destroyCommandPool()
		d.destroyDevice()
		d.destroyInstance()
		return fmt.Errorf("failed to create command buffer: %w", err)
	}
	if err := d.createFence(); err != nil {
		d.destroyPipeline()
		d.destroyBuffers()
		d.destroyCommandPool()
		d.destroyDevice()
		d.destroyInstance()
		return fmt.Errorf("failed to create fence: %w", err)
	}

	return nil
}

func (d *GPUComputeDriver) createInstance() error {
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString("ipl3search"),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        safeString("ipl3search checksum engine"),
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		ApiVersion:         vk.MakeVersion(1, 2, 0),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return fmt.Errorf("vkCreateInstance failed: %d", res)
	}

	d.instance = instance
	vk.InitInstance(instance)
	return nil
}

// selectPhysicalDevice picks the first device exposing a compute-capable
// queue family. Feature checks for SPIRV_SHADER_PASSTHROUGH-equivalent
// capability and push-constant size are implicit in core Vulkan 1.2: any
// conformant driver supports a ≥4-byte push constant range.
func (d *GPUComputeDriver) selectPhysicalDevice() error {
	var deviceCount uint32
	vk.EnumeratePhysicalDevices(d.instance, &deviceCount, nil)
	if deviceCount == 0 {
		return fmt.Errorf("no Vulkan-capable GPUs found")
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	vk.EnumeratePhysicalDevices(d.instance, &deviceCount, devices)

	for _, device := range devices {
		var queueFamilyCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, nil)
		queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, queueFamilies)

		for i, qf := range queueFamilies {
			qf.Deref()
			if qf.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
				d.physicalDevice = device
				d.queueFamily = uint32(i)

				var props vk.PhysicalDeviceProperties
				vk.GetPhysicalDeviceProperties(device, &props)
				props.Deref()
				nameBytes := unsafe.Slice((*byte)(unsafe.Pointer(&props.DeviceName[0])), len(props.DeviceName))
				d.deviceName = cString(nameBytes)
				return nil
			}
		}
	}

	return fmt.Errorf("no suitable GPU with a compute queue found")
}

func (d *GPUComputeDriver) createDevice() error {
	queuePriority := float32(1.0)
	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: d.queueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{queuePriority},
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueCreateInfo},
	}

	var device vk.Device
	if res := vk.CreateDevice(d.physicalDevice, &deviceCreateInfo, nil, &device); res != vk.Success {
		return fmt.Errorf("vkCreateDevice failed: %d", res)
	}
	d.device = device

	var queue vk.Queue
	vk.GetDeviceQueue(device, d.queueFamily, 0, &queue)
	d.computeQueue = queue

	return nil
}

func (d *GPUComputeDriver) createCommandPool() error {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: d.queueFamily,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}

	var pool vk.CommandPool
	if res := vk.CreateCommandPool(d.device, &poolInfo, nil, &pool); res != vk.Success {
		return fmt.Errorf("vkCreateCommandPool failed: %d", res)
	}
	d.commandPool = pool
	return nil
}

func (d *GPUComputeDriver) findMemoryType(typeFilter uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	var memProps vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(d.physicalDevice, &memProps)
	memProps.Deref()

	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		memProps.MemoryTypes[i].Deref()
		if (typeFilter&(1<<i)) != 0 && (memProps.MemoryTypes[i].PropertyFlags&properties) == properties {
			return i, nil
		}
	}

	return 0, fmt.Errorf("failed to find suitable memory type")
}

func (d *GPUComputeDriver) createBufferPair(size vk.DeviceSize, hostUsage, deviceUsage vk.BufferUsageFlagBits) (bufferPair, error) {
	var pair bufferPair
	pair.size = size

	hostInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(hostUsage),
		SharingMode: vk.SharingModeExclusive,
	}
	if res := vk.CreateBuffer(d.device, &hostInfo, nil, &pair.hostBuffer); res != vk.Success {
		return pair, fmt.Errorf("vkCreateBuffer (host) failed: %d", res)
	}

	var hostReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(d.device, pair.hostBuffer, &hostReqs)
	hostReqs.Deref()
	hostType, err := d.findMemoryType(hostReqs.MemoryTypeBits, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return pair, err
	}
	hostAlloc := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  hostReqs.Size,
		MemoryTypeIndex: hostType,
	}
	if res := vk.AllocateMemory(d.device, &hostAlloc, nil, &pair.hostMemory); res != vk.Success {
		return pair, fmt.Errorf("vkAllocateMemory (host) failed: %d", res)
	}
	vk.BindBufferMemory(d.device, pair.hostBuffer, pair.hostMemory, 0)

	deviceInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(deviceUsage | vk.BufferUsageStorageBufferBit),
		SharingMode: vk.SharingModeExclusive,
	}
	if res := vk.CreateBuffer(d.device, &deviceInfo, nil, &pair.deviceBuffer); res != vk.Success {
		return pair, fmt.Errorf("vkCreateBuffer (device) failed: %d", res)
	}

	var deviceReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(d.device, pair.deviceBuffer, &deviceReqs)
	deviceReqs.Deref()
	deviceType, err := d.findMemoryType(deviceReqs.MemoryTypeBits, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return pair, err
	}
	deviceAlloc := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  deviceReqs.Size,
		MemoryTypeIndex: deviceType,
	}
	if res := vk.AllocateMemory(d.device, &deviceAlloc, nil, &pair.deviceMemory); res != vk.Success {
		return pair, fmt.Errorf("vkAllocateMemory (device) failed: %d", res)
	}
	vk.BindBufferMemory(d.device, pair.deviceBuffer, pair.deviceMemory, 0)

	return pair, nil
}

func (d *GPUComputeDriver) createBuffers() error {
	input, err := d.createBufferPair(
		vk.DeviceSize(stateWordCount*4),
		vk.BufferUsageFlagBits(vk.BufferUsageTransferSrcBit),
		vk.BufferUsageFlagBits(vk.BufferUsageTransferDstBit),
	)
	if err != nil {
		return fmt.Errorf("input buffer pair: %w", err)
	}
	d.input = input

	result, err := d.createBufferPair(
		vk.DeviceSize(resultWordCount*4),
		vk.BufferUsageFlagBits(vk.BufferUsageTransferDstBit),
		vk.BufferUsageFlagBits(vk.BufferUsageTransferSrcBit),
	)
	if err != nil {
		return fmt.Errorf("result buffer pair: %w", err)
	}
	d.result = result

	return nil
}

// createPipeline builds the descriptor set layout (2 storage buffer
// bindings: checksum state and match result), the compute pipeline
// layout (one 4-byte push constant), and the pipeline itself from the
// embedded SPIR-V kernel.
func (d *GPUComputeDriver) createPipeline() error {
	module, err := d.createShaderModule(checksumKernelSPIRV)
	if err != nil {
		return fmt.Errorf("failed to create shader module: %w", err)
	}
	d.shaderModule = module

	bindings := []vk.DescriptorSetLayoutBinding{
		{
			Binding:         0,
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageComputeBit),
		},
		{
			Binding:         1,
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageComputeBit),
		},
	}

	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}
	if res := vk.CreateDescriptorSetLayout(d.device, &layoutInfo, nil, &d.descriptorSetLayout); res != vk.Success {
		return fmt.Errorf("vkCreateDescriptorSetLayout failed: %d", res)
	}

	poolSizes := []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: 2},
	}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       1,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
	}
	if res := vk.CreateDescriptorPool(d.device, &poolInfo, nil, &d.descriptorPool); res != vk.Success {
		return fmt.Errorf("vkCreateDescriptorPool failed: %d", res)
	}

	setAllocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     d.descriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{d.descriptorSetLayout},
	}
	sets := make([]vk.DescriptorSet, 1)
	if res := vk.AllocateDescriptorSets(d.device, &setAllocInfo, &sets[0]); res != vk.Success {
		return fmt.Errorf("vkAllocateDescriptorSets failed: %d", res)
	}
	d.descriptorSet = sets[0]

	writes := []vk.WriteDescriptorSet{
		{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          d.descriptorSet,
			DstBinding:      0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			PBufferInfo: []vk.DescriptorBufferInfo{
				{Buffer: d.input.deviceBuffer, Offset: 0, Range: d.input.size},
			},
		},
		{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          d.descriptorSet,
			DstBinding:      1,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			PBufferInfo: []vk.DescriptorBufferInfo{
				{Buffer: d.result.deviceBuffer, Offset: 0, Range: d.result.size},
			},
		},
	}
	vk.UpdateDescriptorSets(d.device, uint32(len(writes)), writes, 0, nil)

	pushConstantRange := vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(vk.ShaderStageComputeBit),
		Offset:     0,
		Size:       4,
	}
	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         1,
		PSetLayouts:            []vk.DescriptorSetLayout{d.descriptorSetLayout},
		PushConstantRangeCount: 1,
		PPushConstantRanges:    []vk.PushConstantRange{pushConstantRange},
	}
	if res := vk.CreatePipelineLayout(d.device, &pipelineLayoutInfo, nil, &d.pipelineLayout); res != vk.Success {
		return fmt.Errorf("vkCreatePipelineLayout failed: %d", res)
	}

	stageInfo := vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  vk.ShaderStageComputeBit,
		Module: d.shaderModule,
		PName:  safeString("main"),
	}
	pipelineInfo := vk.ComputePipelineCreateInfo{
		SType:  vk.StructureTypeComputePipelineCreateInfo,
		Stage:  stageInfo,
		Layout: d.pipelineLayout,
	}
	pipelines := make([]vk.Pipeline, 1)
	if res := vk.CreateComputePipelines(d.device, vk.NullPipelineCache, 1, []vk.ComputePipelineCreateInfo{pipelineInfo}, nil, pipelines); res != vk.Success {
		return fmt.Errorf("vkCreateComputePipelines failed: %d", res)
	}
	d.pipeline = pipelines[0]

	return nil
}

func (d *GPUComputeDriver) createShaderModule(code []byte) (vk.ShaderModule, error) {
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(code)),
		PCode:    sliceUint32(code),
	}

	var module vk.ShaderModule
	if res := vk.CreateShaderModule(d.device, &createInfo, nil, &module); res != vk.Success {
		return vk.NullShaderModule, fmt.Errorf("vkCreateShaderModule failed: %d", res)
	}
	return module, nil
}

func (d *GPUComputeDriver) createCommandBuffer() error {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        d.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cmdBuffers := make([]vk.CommandBuffer, 1)
	if res := vk.AllocateCommandBuffers(d.device, &allocInfo, cmdBuffers); res != vk.Success {
		return fmt.Errorf("vkAllocateCommandBuffers failed: %d", res)
	}
	d.commandBuffer = cmdBuffers[0]
	return nil
}

func (d *GPUComputeDriver) createFence() error {
	fenceInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	var fence vk.Fence
	if res := vk.CreateFence(d.device, &fenceInfo, nil, &fence); res != vk.Success {
		return fmt.Errorf("vkCreateFence failed: %d", res)
	}
	d.fence = fence
	return nil
}

// WriteInput uploads the 16-word post-round-1007-half state to the
// device's input buffer via the host staging buffer.
func (d *GPUComputeDriver) WriteInput(state [stateWordCount]uint32) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	var data unsafe.Pointer
	vk.MapMemory(d.device, d.input.hostMemory, 0, d.input.size, 0, &data)
	words := unsafe.Slice((*uint32)(data), stateWordCount)
	copy(words, state[:])
	vk.UnmapMemory(d.device, d.input.hostMemory)

	return d.copyBuffer(d.input.hostBuffer, d.input.deviceBuffer, d.input.size)
}

// Run dispatches one batch: a groupXY × groupXY × 1 grid of workgroups,
// with offset pushed as the 4-byte X-base constant.
func (d *GPUComputeDriver) Run(offset uint32, groupXY uint32) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	vk.WaitForFences(d.device, 1, []vk.Fence{d.fence}, vk.True, ^uint64(0))
	vk.ResetFences(d.device, 1, []vk.Fence{d.fence})
	vk.ResetCommandBuffer(d.commandBuffer, 0)

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	vk.BeginCommandBuffer(d.commandBuffer, &beginInfo)

	vk.CmdBindPipeline(d.commandBuffer, vk.PipelineBindPointCompute, d.pipeline)
	vk.CmdBindDescriptorSets(d.commandBuffer, vk.PipelineBindPointCompute, d.pipelineLayout, 0, 1, []vk.DescriptorSet{d.descriptorSet}, 0, nil)
	vk.CmdPushConstants(d.commandBuffer, d.pipelineLayout, vk.ShaderStageFlags(vk.ShaderStageComputeBit), 0, 4, unsafe.Pointer(&offset))
	vk.CmdDispatch(d.commandBuffer, groupXY, groupXY, 1)

	vk.EndCommandBuffer(d.commandBuffer)

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{d.commandBuffer},
	}
	if res := vk.QueueSubmit(d.computeQueue, 1, []vk.SubmitInfo{submitInfo}, d.fence); res != vk.Success {
		return fmt.Errorf("vkQueueSubmit failed: %d", res)
	}

	return nil
}

// ReadResult copies the device result buffer to the host, waits for the
// device to go idle, and returns the four words. It does not clear the
// device buffer: success stickiness must survive across batches within a
// Y iteration.
func (d *GPUComputeDriver) ReadResult() ([resultWordCount]uint32, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	var out [resultWordCount]uint32

	if err := d.copyBuffer(d.result.deviceBuffer, d.result.hostBuffer, d.result.size); err != nil {
		return out, err
	}

	var data unsafe.Pointer
	vk.MapMemory(d.device, d.result.hostMemory, 0, d.result.size, 0, &data)
	words := unsafe.Slice((*uint32)(data), resultWordCount)
	copy(out[:], words)
	vk.UnmapMemory(d.device, d.result.hostMemory)

	return out, nil
}

// copyBuffer records, submits, and waits on a one-shot buffer-to-buffer
// copy. Used for both the write_input upload and the read_result
// download, each blocking the caller until the device finishes.
func (d *GPUComputeDriver) copyBuffer(src, dst vk.Buffer, size vk.DeviceSize) error {
	vk.WaitForFences(d.device, 1, []vk.Fence{d.fence}, vk.True, ^uint64(0))
	vk.ResetFences(d.device, 1, []vk.Fence{d.fence})
	vk.ResetCommandBuffer(d.commandBuffer, 0)

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	vk.BeginCommandBuffer(d.commandBuffer, &beginInfo)

	region := vk.BufferCopy{SrcOffset: 0, DstOffset: 0, Size: size}
	vk.CmdCopyBuffer(d.commandBuffer, src, dst, 1, []vk.BufferCopy{region})

	vk.EndCommandBuffer(d.commandBuffer)

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{d.commandBuffer},
	}
	if res := vk.QueueSubmit(d.computeQueue, 1, []vk.SubmitInfo{submitInfo}, d.fence); res != vk.Success {
		return fmt.Errorf("vkQueueSubmit (copy) failed: %d", res)
	}
	vk.WaitForFences(d.device, 1, []vk.Fence{d.fence}, vk.True, ^uint64(0))

	return nil
}

// Destroy releases every Vulkan resource owned by the driver.
func (d *GPUComputeDriver) Destroy() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !d.initialized {
		return
	}

	vk.DestroyFence(d.device, d.fence, nil)
	d.destroyPipeline()
	d.destroyBuffers()
	d.destroyCommandPool()
	d.destroyDevice()
	d.destroyInstance()
	d.initialized = false
}

func (d *GPUComputeDriver) destroyPipeline() {
	vk.DestroyPipeline(d.device, d.pipeline, nil)
	vk.DestroyPipelineLayout(d.device, d.pipelineLayout, nil)
	vk.DestroyDescriptorPool(d.device, d.descriptorPool, nil)
	vk.DestroyDescriptorSetLayout(d.device, d.descriptorSetLayout, nil)
	vk.DestroyShaderModule(d.device, d.shaderModule, nil)
}

func (d *GPUComputeDriver) destroyBuffers() {
	for _, pair := range []bufferPair{d.input, d.result} {
		vk.DestroyBuffer(d.device, pair.hostBuffer, nil)
		vk.FreeMemory(d.device, pair.hostMemory, nil)
		vk.DestroyBuffer(d.device, pair.deviceBuffer, nil)
		vk.FreeMemory(d.device, pair.deviceMemory, nil)
	}
}

func (d *GPUComputeDriver) destroyCommandPool() {
	vk.DestroyCommandPool(d.device, d.commandPool, nil)
}

func (d *GPUComputeDriver) destroyDevice() {
	vk.DestroyDevice(d.device, nil)
}

func (d *GPUComputeDriver) destroyInstance() {
	vk.DestroyInstance(d.instance, nil)
}

// safeString NUL-terminates a Go string for passing to Vulkan's C-string
// parameters.
func safeString(s string) string {
	return s + "\x00"
}

// sliceUint32 reinterprets a SPIR-V byte blob as the uint32 words Vulkan
// expects for shader module creation.
func sliceUint32(data []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}

// cString finds the first NUL in a fixed-size C char buffer and returns
// the bytes before it as a Go string.
func cString(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}
